package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/app"
	"manachat.ai/manachat/internal/auth"
	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/core"
	"manachat.ai/manachat/internal/store"
)

type APIHandler struct {
	ctrl    *app.Controller
	catalog *catalog.Catalog
	engine  *core.ChatEngine
	gate    *auth.Gate
}

func NewAPIHandler(ctrl *app.Controller, cat *catalog.Catalog, engine *core.ChatEngine, gate *auth.Gate) *APIHandler {
	return &APIHandler{ctrl: ctrl, catalog: cat, engine: engine, gate: gate}
}

// JWTAuthMiddleware requires a bearer token whose subject matches the active
// profile's email. WebSocket upgrades may carry the token as a query
// parameter instead.
func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}
		if tokenString == "" {
			http.Error(w, "Authorization is required", http.StatusUnauthorized)
			return
		}

		email, err := auth.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, ok := h.ctrl.User()
		if !ok || !strings.EqualFold(user.Email, email) {
			http.Error(w, "No active profile for token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnlyMiddleware hides the admin surface entirely from non-admins: the
// response is a plain not-found, not a permission error.
func (h *APIHandler) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.ctrl.User()
		if !ok || !user.IsAdmin {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type AuthRequest struct {
	Mode     string `json:"mode"` // "signup" or "login"
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  *store.UserProfile `json:"user"`
	View  app.View           `json:"view"`
}

func (h *APIHandler) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	isLogin := req.Mode != "signup"
	profile, err := h.gate.Authenticate(req.Name, req.Email, req.Password)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	view := h.ctrl.CompleteAuth(profile, isLogin)

	token, err := auth.GenerateJWT(profile.Email)
	if err != nil {
		log.Error().Err(err).Str("email", profile.Email).Msg("failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	user, _ := h.ctrl.User()
	json.NewEncoder(w).Encode(AuthResponse{Token: token, User: &user, View: view})
}

func (h *APIHandler) StateHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.ctrl.Snapshot())
}

func (h *APIHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	writeView(w, h.ctrl.StartExperience())
}

type OnboardingRequest struct {
	Gender   store.Gender   `json:"gender"`
	Language store.Language `json:"language"`
}

func (h *APIHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.ctrl.CompleteOnboarding(req.Gender, req.Language)
	if err != nil {
		if errors.Is(err, app.ErrNoProfile) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeView(w, view)
}

func (h *APIHandler) OnboardingCancelHandler(w http.ResponseWriter, r *http.Request) {
	writeView(w, h.ctrl.CancelOnboarding())
}

func (h *APIHandler) PreferencesHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.ctrl.OpenPreferences()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeView(w, view)
}

func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var patch app.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ctrl.UpdateProfile(patch); err != nil {
		if errors.Is(err, app.ErrNoProfile) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	user, _ := h.ctrl.User()
	json.NewEncoder(w).Encode(user)
}

func (h *APIHandler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	writeView(w, h.ctrl.SignOut())
}

func (h *APIHandler) ListPersonasHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.ctrl.User()
	if !ok {
		http.Error(w, "No active profile", http.StatusUnauthorized)
		return
	}
	json.NewEncoder(w).Encode(h.catalog.EffectiveForProfile(user))
}

type SelectPersonaResponse struct {
	View     app.View            `json:"view"`
	Persona  catalog.BotPersona  `json:"persona"`
	Messages []store.ChatMessage `json:"messages"`
}

func (h *APIHandler) SelectPersonaHandler(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	view, err := h.ctrl.SelectPersona(personaID)
	if err != nil {
		if errors.Is(err, core.ErrUnknownPersona) {
			http.NotFound(w, r)
		} else {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
		return
	}

	user, _ := h.ctrl.User()
	messages, err := h.engine.Open(personaID, user)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	persona, _ := h.ctrl.ResolvedPersona()
	json.NewEncoder(w).Encode(SelectPersonaResponse{View: view, Persona: persona, Messages: messages})
}

func (h *APIHandler) CustomizePersonaHandler(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	user, ok := h.ctrl.User()
	if !ok {
		http.Error(w, "No active profile", http.StatusUnauthorized)
		return
	}
	if _, found := h.catalog.Find(user.Language, personaID); !found {
		http.NotFound(w, r)
		return
	}

	var patch catalog.PersonaPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if patch.Icon != nil {
		normalized := catalog.ParseIcon(string(*patch.Icon))
		patch.Icon = &normalized
	}

	h.catalog.ApplyOverride(personaID, patch)
	persona, _ := h.catalog.Find(user.Language, personaID)
	json.NewEncoder(w).Encode(persona)
}

func (h *APIHandler) ChatBackHandler(w http.ResponseWriter, r *http.Request) {
	writeView(w, h.ctrl.BackToDashboard())
}

func (h *APIHandler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")
	json.NewEncoder(w).Encode(h.engine.History(personaID))
}

func (h *APIHandler) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	user, ok := h.ctrl.User()
	if !ok {
		http.Error(w, "No active profile", http.StatusUnauthorized)
		return
	}

	messages, err := h.engine.Clear(personaID, user)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *APIHandler) OpenAdminHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.ctrl.OpenAdmin()
	if err != nil {
		// Non-admins see nothing, not a permission error.
		http.NotFound(w, r)
		return
	}
	writeView(w, view)
}

func (h *APIHandler) CloseAdminHandler(w http.ResponseWriter, r *http.Request) {
	writeView(w, h.ctrl.CloseAdmin())
}

func (h *APIHandler) ListBasePersonasHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.catalog.Base())
}

func (h *APIHandler) UpdateBasePersonaHandler(w http.ResponseWriter, r *http.Request) {
	lang := store.Language(chi.URLParam(r, "language"))
	personaID := chi.URLParam(r, "personaID")

	if !lang.Valid() {
		http.Error(w, "Unknown language", http.StatusBadRequest)
		return
	}

	var updated catalog.BotPersona
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	updated.ID = personaID
	updated.Icon = catalog.ParseIcon(string(updated.Icon))

	h.catalog.UpdateBase(updated, lang)
	json.NewEncoder(w).Encode(h.catalog.Base()[lang])
}

func (h *APIHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.ctrl.Snapshot().Settings)
}

func (h *APIHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings store.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.ctrl.SetSettings(settings)
	json.NewEncoder(w).Encode(settings)
}

type ThemeRequest struct {
	Theme store.Theme `json:"theme"`
}

func (h *APIHandler) UpdateThemeHandler(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.ctrl.SetTheme(req.Theme)
	json.NewEncoder(w).Encode(h.ctrl.Snapshot())
}

func writeView(w http.ResponseWriter, view app.View) {
	json.NewEncoder(w).Encode(map[string]app.View{"view": view})
}
