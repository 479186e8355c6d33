// Package users exposes the signed-in user's profile and the clinic's
// staff reference lists.
package users

import (
	"context"
	"net/http"

	"github.com/clinicops/clinic-console/pkg/logging"
)

// Doer issues authenticated JSON requests. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Profile describes the signed-in user. Access gates the admin screens.
type Profile struct {
	Username     string `json:"username"`
	Role         string `json:"user_type"`
	Access       bool   `json:"allow_access"`
	ProfileImage string `json:"profile_image_directory"`
}

// Doctor is a staff reference row used by the appointment and
// prescription pickers.
type Doctor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Service fetches profile and staff data.
type Service struct {
	api    Doer
	logger *logging.Logger
}

// NewService creates a user data service.
func NewService(client Doer, logger *logging.Logger) *Service {
	if client == nil {
		panic("users: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, logger: logger}
}

// Profile fetches the signed-in user's account data.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := s.api.Do(ctx, http.MethodGet, "/api/user-data", nil, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Doctors lists the clinic's doctors.
func (s *Service) Doctors(ctx context.Context) ([]Doctor, error) {
	var list []Doctor
	if err := s.api.Do(ctx, http.MethodGet, "/api/doctors", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
