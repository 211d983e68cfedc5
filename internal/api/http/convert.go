package http

import (
	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
)

func toUserResponse(u domain.User) apisdk.UserResponse {
	return apisdk.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		OrganisationID: u.OrganisationID,
		Confirmed:      u.Confirmed(),
		ConfirmedAt:    u.ConfirmedAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserResponses(us []domain.User) []apisdk.UserResponse {
	out := make([]apisdk.UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toCustomerResponse(c domain.Customer) apisdk.CustomerResponse {
	liked := c.LikedSuggestions
	if liked == nil {
		liked = []string{}
	}
	return apisdk.CustomerResponse{
		ID:               c.ID,
		Username:         c.Username,
		Email:            c.Email,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		PhoneNumber:      c.PhoneNumber,
		LikedSuggestions: liked,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toCustomerResponses(cs []domain.Customer) []apisdk.CustomerResponse {
	out := make([]apisdk.CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

func toSubscriberResponses(ss []domain.Subscriber) []apisdk.SubscriberResponse {
	out := make([]apisdk.SubscriberResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, apisdk.SubscriberResponse{UUID: s.UUID, Email: s.Email, CreatedAt: s.CreatedAt})
	}
	return out
}

func toContactResponse(c domain.Contact) apisdk.ContactResponse {
	return apisdk.ContactResponse{
		UUID:        c.UUID,
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Email:       c.Email,
		Processed:   c.Processed,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toContactResponses(cs []domain.Contact) []apisdk.ContactResponse {
	out := make([]apisdk.ContactResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toContactResponse(c))
	}
	return out
}
