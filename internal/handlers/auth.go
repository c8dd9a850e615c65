package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"DTR_BACK-END/internal/config"
	"DTR_BACK-END/internal/dto"
	"DTR_BACK-END/internal/facerec"
	"DTR_BACK-END/internal/logging"
	"DTR_BACK-END/internal/middleware"
	"DTR_BACK-END/internal/models"
	"DTR_BACK-END/internal/utils"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	db     DB
	config *config.Config
	log    logging.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db DB, cfg *config.Config, log logging.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account with username, email, password, and a captured face descriptor
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Validate required fields
	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Username, email, password, and confirmation are required")
		return
	}
	if req.FaceDescriptor == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Face capture is required for registration")
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Passwords do not match")
		return
	}
	if len(req.Password) < MinPasswordLength {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	// The descriptor must be a well-formed fixed-length vector before it is
	// stored as text
	descriptor, err := facerec.Parse(req.FaceDescriptor)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Face descriptor is malformed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	// Check if user already exists
	var existingUserID uuid.UUID
	err = h.db.QueryRow(ctx,
		"SELECT id FROM users WHERE email = $1 OR username = $2",
		req.Email, req.Username).Scan(&existingUserID)

	if err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "Email or username already registered")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		h.log.Error(ctx, "user lookup failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error(ctx, "password hash failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	userID := uuid.New()
	now := time.Now()

	_, err = h.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, face_descriptor, face_image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, req.Username, req.Email, string(hashedPassword), descriptor.String(), req.FaceImage, now)

	if err != nil {
		h.log.Error(ctx, "user insert failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{Message: "Registration successful"})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password; sets the session cookie on success
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	// Unknown email and wrong password must be indistinguishable to the
	// caller
	var user models.User
	err := h.db.QueryRow(ctx,
		"SELECT id, username, email, password_hash FROM users WHERE email = $1",
		req.Email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)

	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}
	if err != nil {
		h.log.Error(ctx, "user lookup failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		h.log.Error(ctx, "token generation failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	middleware.SetSessionCookie(w, token, &h.config.JWT)

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Logout clears the session cookie
// @Summary Logout user
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.RegisterResponse "Logged out"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	middleware.ClearSessionCookie(w, &h.config.JWT)
	utils.WriteJSONResponse(w, http.StatusOK, dto.RegisterResponse{Message: "Logged out"})
}

// GetProfile returns the current user's summary
// @Summary Get user profile
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Database.QueryTimeout)
	defer cancel()

	var user models.User
	err := h.db.QueryRow(ctx,
		"SELECT id, username, email FROM users WHERE id = $1",
		userID).Scan(&user.ID, &user.Username, &user.Email)

	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account for this session")
		return
	}
	if err != nil {
		h.log.Error(ctx, "profile lookup failed", "err", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}
