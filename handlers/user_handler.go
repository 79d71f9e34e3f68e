package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"chirp/auth"
	"chirp/dto"
	"chirp/middleware"
	"chirp/models"
	"chirp/monitoring"
	"chirp/repositories"
)

const minPasswordLength = 6

// UserHandler handles registration, login and the follow graph endpoints.
type UserHandler struct {
	userRepo repositories.UserRepository
	issuer   *auth.Issuer
}

func NewUserHandler(userRepo repositories.UserRepository, issuer *auth.Issuer) *UserHandler {
	return &UserHandler{userRepo: userRepo, issuer: issuer}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Gender   string `json:"gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(requestData.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password is too short")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Username: requestData.Username,
		Password: string(hashedPassword),
		Name:     requestData.Name,
		Gender:   requestData.Gender,
	}
	// The unique constraint decides the race, not a prior existence check.
	if err := h.userRepo.Create(&user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		logrus.WithError(err).Error("Failed to create user")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.RegisterSuccess.Inc()
	writeMessage(w, "User created successfully")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.userRepo.FindByUsername(requestData.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			monitoring.LoginFailure.WithLabelValues("invalid_user").Inc()
			writeError(w, http.StatusBadRequest, "Invalid user")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(requestData.Password)); err != nil {
		monitoring.LoginFailure.WithLabelValues("invalid_password").Inc()
		writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	token, err := h.issuer.GenerateToken(user.Username)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		writeError(w, http.StatusInternalServerError, "Error issuing token")
		return
	}

	monitoring.LoginSuccess.Inc()
	writeJSON(w, map[string]string{"jwtToken": token})
}

// Following lists display names of everyone the caller follows.
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	names, err := h.userRepo.FollowingNames(caller.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, namesToDTO(names))
}

// Followers lists display names of everyone following the caller.
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	names, err := h.userRepo.FollowerNames(caller.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, namesToDTO(names))
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	var requestData struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	target, err := h.userRepo.FindByUsername(requestData.Username)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.userRepo.Follow(caller.UserID, target.UserID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFollowing) {
			writeError(w, http.StatusConflict, "Already following")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeMessage(w, "Now following "+target.Username)
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())
	username := mux.Vars(r)["username"]

	target, err := h.userRepo.FindByUsername(username)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.userRepo.Unfollow(caller.UserID, target.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFollowing) {
			writeError(w, http.StatusNotFound, "Not following")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeMessage(w, "Unfollowed "+target.Username)
}

func namesToDTO(names []string) []dto.NameDTO {
	out := make([]dto.NameDTO, len(names))
	for i, n := range names {
		out[i] = dto.NameDTO{Name: n}
	}
	return out
}
