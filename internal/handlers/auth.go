// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"givehub/internal/middleware"
	"givehub/internal/session"
	"givehub/internal/store"
)

// totpIssuer labels GiveHub accounts in authenticator apps.
const totpIssuer = "GiveHub"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	TwoFARequired bool `json:"two_fa_required"`
	SetupRequired bool `json:"setup_required"`
}

// Login handles POST /api/auth/login. On valid credentials it creates a
// session with TwoFADone=false; the client must complete TOTP verification
// before the session unlocks protected endpoints.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "malformed request body")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid email or password")
		return
	}

	// TwoFADone starts false; verification flips it.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:         user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		TwoFADone:      false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		TwoFARequired: true,
		SetupRequired: user.Needs2FASetup(),
	})
}

type twoFASetupResponse struct {
	Secret     string `json:"secret"`
	QRCode     string `json:"qr_code"` // base64-encoded PNG
	OtpauthURL string `json:"otpauth_url"`
}

// TwoFASetup handles POST /api/auth/2fa/setup. It generates a fresh TOTP
// secret for the logged-in user and returns it with a QR code for
// authenticator apps.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, twoFASetupResponse{
		Secret:     key.Secret(),
		QRCode:     base64.StdEncoding.EncodeToString(qrPNG),
		OtpauthURL: key.URL(),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify handles POST /api/auth/2fa/verify. A valid TOTP code marks
// the session as fully authenticated; on first-time setup it also enables
// TOTP on the account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req twoFAVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "malformed request body")
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "failed-precondition", "two-factor setup has not started")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid verification code")
		return
	}

	// First successful verification enables TOTP permanently.
	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal server error")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

type meResponse struct {
	UserID         string  `json:"user_id"`
	Email          string  `json:"email"`
	DisplayName    string  `json:"display_name"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

// Me handles GET /api/auth/me.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	resp := meResponse{
		UserID:      sess.UserID.String(),
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		Role:        sess.Role,
	}
	if sess.OrganizationID != nil {
		id := sess.OrganizationID.String()
		resp.OrganizationID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
