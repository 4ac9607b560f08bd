package dto

import (
	"github.com/allisson/users/internal/user/domain"
	"github.com/allisson/users/internal/user/usecase"
)

// ToUserInput converts a UserRequest to the full-field use case input used by
// Create and FullUpdate. Absent optional strings become empty; an absent
// email or birth date stays absent so the use case can reject it.
func ToUserInput(req UserRequest) usecase.UserInput {
	return usecase.UserInput{
		FirstName:   stringValue(req.FirstName),
		LastName:    stringValue(req.LastName),
		Email:       stringValue(req.Email),
		BirthDate:   req.BirthDate,
		Address:     stringValue(req.Address),
		PhoneNumber: stringValue(req.PhoneNumber),
	}
}

// ToUserPatch converts a UserRequest to the merge-semantics use case input
// used by PartialUpdate, preserving field presence.
func ToUserPatch(req UserRequest) usecase.UserPatch {
	return usecase.UserPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		BirthDate:   req.BirthDate,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
}

// ToUserResponse converts a domain User to its API representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		BirthDate:   user.BirthDate,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserListResponse converts a slice of domain Users, never returning nil so
// empty lists serialize as [].
func ToUserListResponse(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
