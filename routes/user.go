package routes

import (
	"encoding/base64"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type UserHandler struct {
	db      *gorm.DB
	tokens  *utils.TokenManager
	objects storage.ObjectStore
}

func NewUserHandler(db *gorm.DB, tokens *utils.TokenManager, objects storage.ObjectStore) *UserHandler {
	return &UserHandler{db: db, tokens: tokens, objects: objects}
}

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Role      string `json:"role" validate:"omitempty,oneof=user property_owner"`
	Location  string `json:"location"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female"`
}

func (h *UserHandler) Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(input.Email)

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "User already exists. Please Login", ctx)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		Location:  input.Location,
		Gender:    input.Gender,
	}
	if err := h.db.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	h.returnUser(user, ctx)
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Login(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password."

	var user models.User
	if err := h.db.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	h.returnUser(user, ctx)
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *UserHandler) RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)

	userID, ok := h.tokens.ConsumeRefreshToken(
		ctx.Request().Context(), string(token.Token), token.StandardClaims.Subject)
	if !ok {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Refresh token is no longer valid", ctx)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	tokenPair, err := h.tokens.CreateTokenPair(ctx.Request().Context(), user.ID, user.Role)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(tokenPair)
}

func (h *UserHandler) GetUser(ctx iris.Context) {
	var user models.User
	if err := h.db.First(&user, currentUserID(ctx)).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	h.signProfilePicture(ctx, &user)
	ctx.JSON(user)
}

type UpdateUserInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
	Password    string `json:"password" validate:"omitempty,min=8,max=256"`
}

func (h *UserHandler) UpdateUser(ctx iris.Context) {
	var input UpdateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := h.db.First(&user, currentUserID(ctx)).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		user.Password = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"user": user, "message": "User updated successfully"})
}

// GetAllUsers is admin-only.
func (h *UserHandler) GetAllUsers(ctx iris.Context) {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"users": users, "message": "Users fetched successfully"})
}

type UploadProfilePictureInput struct {
	Image string `json:"image" validate:"required"` // base64 payload
}

func (h *UserHandler) UploadProfilePicture(ctx iris.Context) {
	var input UploadProfilePictureInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := h.db.First(&user, currentUserID(ctx)).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	data, err := decodeBase64Image(input.Image)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid image payload", ctx)
		return
	}

	key, err := h.objects.Upload(ctx.Request().Context(), "profile-pictures", "avatar.jpg", "image/jpeg", data)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if user.ProfilePicture != "" {
		h.objects.Delete(ctx.Request().Context(), user.ProfilePicture)
	}

	user.ProfilePicture = key
	if err := h.db.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	h.signProfilePicture(ctx, &user)
	ctx.JSON(iris.Map{"user": user, "message": "Profile picture updated successfully"})
}

// signProfilePicture replaces the stored object key with a presigned URL for
// the response.
func (h *UserHandler) signProfilePicture(ctx iris.Context, user *models.User) {
	if user.ProfilePicture == "" {
		return
	}
	if url, err := h.objects.SignedURL(ctx.Request().Context(), user.ProfilePicture); err == nil {
		user.ProfilePicture = url
	}
}

func (h *UserHandler) returnUser(user models.User, ctx iris.Context) {
	tokenPair, err := h.tokens.CreateTokenPair(ctx.Request().Context(), user.ID, user.Role)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"phoneNumber":  user.PhoneNumber,
		"role":         user.Role,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// decodeBase64Image accepts both raw base64 and data-URL payloads.
func decodeBase64Image(src string) ([]byte, error) {
	if i := strings.Index(src, ","); i != -1 {
		src = src[i+1:]
	}
	return base64.StdEncoding.DecodeString(src)
}
