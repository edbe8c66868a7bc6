package dto

import (
	"github.com/openbounty/bounty-board-api/internal/models"
)

// UserDTO is the public user summary embedded in bounty and submission
// responses.
type UserDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

// UserDetailDTO is the authenticated user's own view of their account.
type UserDetailDTO struct {
	ID            uint64  `json:"id"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Avatar        *string `json:"avatar,omitempty"`
	WalletAddress *string `json:"wallet_address,omitempty"`
	Earnings      float64 `json:"earnings"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

// ToUserDetailDTO converts a User model to UserDetailDTO
func ToUserDetailDTO(user models.User) UserDetailDTO {
	return UserDetailDTO{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Avatar:        user.Avatar,
		WalletAddress: user.WalletAddress,
		Earnings:      user.Earnings,
	}
}
