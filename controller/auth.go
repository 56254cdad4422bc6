package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gotours/config"
	"gotours/database"
	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

// EmailSender is what the auth flow needs from the mailer; tests swap in
// a fake.
type EmailSender interface {
	Send(to, subject, message string) error
}

type AuthHandler struct {
	db   *database.DB
	cfg  *config.Config
	mail EmailSender
}

func NewAuthHandler(db *database.DB, cfg *config.Config, mail EmailSender) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mail: mail}
}

// createSendToken issues a session token, sets it as an http-only cookie
// and writes the success envelope with the user attached.
func (h *AuthHandler) createSendToken(c *gin.Context, user models.User, status int) error {
	token, err := utils.SignedToken(user.ID.Hex(), h.cfg.JWTSecret, h.cfg.JWTExpiresIn)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.CookieExpiresIn),
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(status, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
	return nil
}

func (h *AuthHandler) Signup(c *gin.Context) error {
	var in models.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if err := validate.Struct(in); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}

	hash, err := utils.HashPass(in.Password)
	if err != nil {
		return err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:     in.Name,
		Email:    strings.ToLower(in.Email),
		Role:     role,
		Password: hash,
		Active:   true,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	res, err := h.db.Users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewAppError("email already in use", http.StatusBadRequest)
		}
		return err
	}
	user.ID = res.InsertedID.(bson.ObjectID)

	return h.createSendToken(c, user, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) error {
	var in models.UserLogin
	if err := c.ShouldBindJSON(&in); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if err := validate.Struct(in); err != nil {
		return utils.NewAppError("please provide email and password", http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	// one generic failure for both unknown email and wrong password, so
	// responses never reveal which accounts exist
	var user models.User
	err := h.db.Users().FindOne(ctx, models.ActiveFilter(bson.M{"email": strings.ToLower(in.Email)})).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("incorrect email or password", http.StatusUnauthorized)
		}
		return err
	}
	if err := utils.ComparePass(in.Password, user.Password); err != nil {
		return utils.NewAppError("incorrect email or password", http.StatusUnauthorized)
	}

	return h.createSendToken(c, user, http.StatusOK)
}

func (h *AuthHandler) Logout(c *gin.Context) error {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Second),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.JSON(http.StatusOK, gin.H{"status": "success"})
	return nil
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) error {
	var in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if err := validate.Struct(in); err != nil {
		return utils.NewAppError("please provide a valid email", http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var user models.User
	err := h.db.Users().FindOne(ctx, models.ActiveFilter(bson.M{"email": strings.ToLower(in.Email)})).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("there is no user with that email address", http.StatusNotFound)
		}
		return err
	}

	plain, hashed, err := utils.CreateResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(h.cfg.ResetTokenExpiry)

	_, err = h.db.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"passwordResetToken":   hashed,
		"passwordResetExpires": expires,
	}})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/users/reset-password/%s", requestScheme(c), c.Request.Host, plain)
	message := fmt.Sprintf("Forgot your password? Reset it using the following link:\n%s\nIf you didn't request a password reset, please ignore this email.", resetURL)

	if err := h.mail.Send(user.Email, "Your password reset token (valid for 10 min)", message); err != nil {
		// never leave a live reset token behind when the user was not
		// notified
		_, _ = h.db.Users().UpdateByID(ctx, user.ID, bson.M{"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		}})
		return utils.NewAppError("there was an error sending the email, try again later", http.StatusInternalServerError)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "token sent to email",
	})
	return nil
}

func (h *AuthHandler) ResetPassword(c *gin.Context) error {
	hashed, err := utils.HashResetToken(c.Param("token"))
	if err != nil {
		return utils.NewAppError("token is invalid or has expired", http.StatusBadRequest)
	}

	var in models.PasswordReset
	if err := c.ShouldBindJSON(&in); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if err := validate.Struct(in); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var user models.User
	err = h.db.Users().FindOne(ctx, models.ActiveFilter(bson.M{
		"passwordResetToken":   hashed,
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	})).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("token is invalid or has expired", http.StatusBadRequest)
		}
		return err
	}

	hash, err := utils.HashPass(in.Password)
	if err != nil {
		return err
	}

	_, err = h.db.Users().UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{
			"password":          hash,
			"passwordChangedAt": time.Now(),
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	})
	if err != nil {
		return err
	}

	// log the user straight in with a fresh token
	return h.createSendToken(c, user, http.StatusOK)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) error {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.NewAppError("you are not logged in, please log in to get access", http.StatusUnauthorized)
	}

	var in models.PasswordUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if err := validate.Struct(in); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	// re-read the record so the comparison runs against the stored hash
	var user models.User
	if err := h.db.Users().FindOne(ctx, models.ActiveFilter(bson.M{"_id": current.ID})).Decode(&user); err != nil {
		return err
	}

	if err := utils.ComparePass(in.PasswordCurrent, user.Password); err != nil {
		return utils.NewAppError("your current password is wrong", http.StatusUnauthorized)
	}

	hash, err := utils.HashPass(in.Password)
	if err != nil {
		return err
	}

	_, err = h.db.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"password":          hash,
		"passwordChangedAt": time.Now(),
	}})
	if err != nil {
		return err
	}

	return h.createSendToken(c, user, http.StatusOK)
}

// requestScheme trusts X-Forwarded-Proto first so reset links stay https
// behind a TLS-terminating proxy.
func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
