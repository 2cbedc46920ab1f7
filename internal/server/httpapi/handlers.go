package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/psemenov/passvault/internal/logging"
	"github.com/psemenov/passvault/internal/passgen"
	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/services"
)

// The handler layer depends on narrow interfaces so tests can substitute
// fakes for the concrete services.

type UserService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, email, password, twoFactorCode string) (*models.User, error)
}

type VaultService interface {
	CreateVault(ctx context.Context, name string, description *string, ownerID string) (*models.Vault, error)
	CreateCategory(ctx context.Context, name, vaultID, actingUserID string) (*models.Category, error)
	GetVaultItems(ctx context.Context, vaultID string, categoryID *string) (*models.ItemCollections, error)
}

type ItemService interface {
	CreatePasswordEntry(ctx context.Context, in services.CreatePasswordEntryInput) (*models.PasswordEntry, error)
	CreateSecureNote(ctx context.Context, in services.CreateSecureNoteInput) (*models.SecureNote, error)
	CreateCreditCard(ctx context.Context, in services.CreateCreditCardInput) (*models.CreditCard, error)
}

type SharingService interface {
	ShareVault(ctx context.Context, vaultID, targetUserID, actingUserID string, level models.PermissionLevel) (*models.VaultSharing, error)
}

type SearchService interface {
	Search(ctx context.Context, in services.SearchInput) (*models.ItemCollections, error)
}

// Handlers holds the service dependencies for all routes.
type Handlers struct {
	Users   UserService
	Vaults  VaultService
	Items   ItemService
	Sharing SharingService
	Search  SearchService
	Logger  logging.Logger
}

// --- users ---

type registerUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password, req.TwoFactorCode)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// --- vaults ---

type createVaultRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     string  `json:"owner_id"`
}

type vaultResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     string  `json:"owner_id"`
}

// toVaultResponse deliberately omits the key material.
func toVaultResponse(v *models.Vault) vaultResponse {
	return vaultResponse{ID: v.ID, Name: v.Name, Description: v.Description, OwnerID: v.OwnerID}
}

func (h *Handlers) CreateVault(w http.ResponseWriter, r *http.Request) {
	var req createVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	vault, err := h.Vaults.CreateVault(r.Context(), req.Name, req.Description, req.OwnerID)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVaultResponse(vault))
}

type createCategoryRequest struct {
	Name         string `json:"name"`
	ActingUserID string `json:"acting_user_id"`
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	category, err := h.Vaults.CreateCategory(r.Context(), req.Name, mux.Vars(r)["vaultID"], req.ActingUserID)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handlers) GetVaultItems(w http.ResponseWriter, r *http.Request) {
	var categoryID *string
	if v := r.URL.Query().Get("category_id"); v != "" {
		categoryID = &v
	}

	collections, err := h.Vaults.GetVaultItems(r.Context(), mux.Vars(r)["vaultID"], categoryID)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

// --- items ---

type createPasswordEntryRequest struct {
	ActingUserID string  `json:"acting_user_id"`
	CategoryID   *string `json:"category_id"`
	Title        string  `json:"title"`
	Username     *string `json:"username"`
	URL          *string `json:"url"`
	Notes        *string `json:"notes"`
	Password     string  `json:"password"`
}

func (h *Handlers) CreatePasswordEntry(w http.ResponseWriter, r *http.Request) {
	var req createPasswordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	entry, err := h.Items.CreatePasswordEntry(r.Context(), services.CreatePasswordEntryInput{
		VaultID:      mux.Vars(r)["vaultID"],
		CategoryID:   req.CategoryID,
		ActingUserID: req.ActingUserID,
		Title:        req.Title,
		Username:     req.Username,
		URL:          req.URL,
		Notes:        req.Notes,
		Password:     req.Password,
	})
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type createSecureNoteRequest struct {
	ActingUserID string  `json:"acting_user_id"`
	CategoryID   *string `json:"category_id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
}

func (h *Handlers) CreateSecureNote(w http.ResponseWriter, r *http.Request) {
	var req createSecureNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	note, err := h.Items.CreateSecureNote(r.Context(), services.CreateSecureNoteInput{
		VaultID:      mux.Vars(r)["vaultID"],
		CategoryID:   req.CategoryID,
		ActingUserID: req.ActingUserID,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

type createCreditCardRequest struct {
	ActingUserID   string  `json:"acting_user_id"`
	CategoryID     *string `json:"category_id"`
	Title          string  `json:"title"`
	CardholderName string  `json:"cardholder_name"`
	Number         string  `json:"number"`
	CVV            string  `json:"cvv"`
	ExpiryMonth    int     `json:"expiry_month"`
	ExpiryYear     int     `json:"expiry_year"`
}

func (h *Handlers) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req createCreditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	card, err := h.Items.CreateCreditCard(r.Context(), services.CreateCreditCardInput{
		VaultID:        mux.Vars(r)["vaultID"],
		CategoryID:     req.CategoryID,
		ActingUserID:   req.ActingUserID,
		Title:          req.Title,
		CardholderName: req.CardholderName,
		Number:         req.Number,
		CVV:            req.CVV,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
	})
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// --- sharing ---

type shareVaultRequest struct {
	TargetUserID string `json:"target_user_id"`
	ActingUserID string `json:"acting_user_id"`
	Level        string `json:"level"`
}

func (h *Handlers) ShareVault(w http.ResponseWriter, r *http.Request) {
	var req shareVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	level, err := models.ParsePermissionLevel(req.Level)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	sharing, err := h.Sharing.ShareVault(r.Context(), mux.Vars(r)["vaultID"], req.TargetUserID, req.ActingUserID, level)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sharing)
}

// --- search ---

func (h *Handlers) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := services.SearchInput{
		Query: q.Get("q"),
		Type:  services.ItemType(q.Get("type")),
	}
	if v := q.Get("vault_id"); v != "" {
		in.VaultID = &v
	}
	if v := q.Get("category_id"); v != "" {
		in.CategoryID = &v
	}

	collections, err := h.Search.Search(r.Context(), in)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

// --- password generation ---

type generatePasswordRequest struct {
	Length    int  `json:"length"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Digits    bool `json:"digits"`
	Symbols   bool `json:"symbols"`
}

func (h *Handlers) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	var req generatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	password, err := passgen.Generate(passgen.Options{
		Length:    req.Length,
		Lowercase: req.Lowercase,
		Uppercase: req.Uppercase,
		Digits:    req.Digits,
		Symbols:   req.Symbols,
	})
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"password": password})
}
