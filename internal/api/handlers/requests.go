package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

const (
	defaultLodgingBudgetMin = 1000
	defaultLodgingBudgetMax = 50000
	defaultGuideBudgetMin   = 2000
	defaultGuideBudgetMax   = 20000
	defaultGroupSize        = 1
	defaultLanguage         = "English"
	anyAccommodationType    = "any"
)

// AccommodationRequest is the JSON body of a lodging recommendation request.
// Pointer fields distinguish "absent" from an explicit zero.
type AccommodationRequest struct {
	BudgetMin         *float64 `json:"budget_min"`
	BudgetMax         *float64 `json:"budget_max"`
	RequiredAmenities []string `json:"required_amenities"`
	Interests         []string `json:"interests"`
	TravelStyle       string   `json:"travel_style"`
	GroupSize         *int     `json:"group_size" validate:"omitempty,min=0"`
	AccommodationType string   `json:"accommodation_type"`
	District          string   `json:"district"`
	Province          string   `json:"province"`
	CityOnly          bool     `json:"city_only"`
	TopK              *int     `json:"top_k" validate:"omitempty,min=1,max=100"`
}

// GuideRequest is the JSON body of a guide recommendation request.
type GuideRequest struct {
	BudgetMin        *float64  `json:"budget_min"`
	BudgetMax        *float64  `json:"budget_max"`
	Languages        *[]string `json:"languages" validate:"omitempty,min=1"`
	Expertise        []string  `json:"expertise"`
	City             string    `json:"city"`
	Province         string    `json:"province"`
	CityOnly         bool      `json:"city_only"`
	GenderPreference string    `json:"gender_preference"`
	TopK             *int      `json:"top_k" validate:"omitempty,min=1,max=100"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names in messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateRequest returns a VALIDATION AppError describing the first failing field.
func validateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.Slice {
			return apperrors.NewValidationError(fmt.Sprintf("%s must not be empty", fe.Field()))
		}
		return apperrors.NewValidationError(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	case "max":
		return apperrors.NewValidationError(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
	default:
		return apperrors.NewValidationError(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
}

// ToQuery validates the request and applies lodging defaults.
func (r *AccommodationRequest) ToQuery(defaultTopK int) (entities.AccommodationQuery, error) {
	if err := validateRequest(r); err != nil {
		return entities.AccommodationQuery{}, err
	}

	accType := strings.TrimSpace(r.AccommodationType)
	if accType == "" {
		accType = anyAccommodationType
	}

	return entities.AccommodationQuery{
		BudgetMin:         floatOr(r.BudgetMin, defaultLodgingBudgetMin),
		BudgetMax:         floatOr(r.BudgetMax, defaultLodgingBudgetMax),
		RequiredAmenities: r.RequiredAmenities,
		Interests:         r.Interests,
		TravelStyle:       strings.TrimSpace(r.TravelStyle),
		GroupSize:         intOr(r.GroupSize, defaultGroupSize),
		AccommodationType: accType,
		City:              strings.TrimSpace(r.District),
		Province:          strings.TrimSpace(r.Province),
		CityOnly:          r.CityOnly,
		TopK:              intOr(r.TopK, defaultTopK),
	}, nil
}

// ToQuery validates the request and applies guide defaults. An absent
// languages field means English; a list with no non-blank entry is rejected.
func (r *GuideRequest) ToQuery(defaultTopK int) (entities.GuideQuery, error) {
	if err := validateRequest(r); err != nil {
		return entities.GuideQuery{}, err
	}

	languages := []string{defaultLanguage}
	if r.Languages != nil {
		languages = make([]string, 0, len(*r.Languages))
		for _, l := range *r.Languages {
			if l = strings.TrimSpace(l); l != "" {
				languages = append(languages, l)
			}
		}
		if len(languages) == 0 {
			return entities.GuideQuery{}, apperrors.NewValidationError("languages must not be empty")
		}
	}

	return entities.GuideQuery{
		BudgetMin:        floatOr(r.BudgetMin, defaultGuideBudgetMin),
		BudgetMax:        floatOr(r.BudgetMax, defaultGuideBudgetMax),
		Languages:        languages,
		Expertise:        r.Expertise,
		City:             strings.TrimSpace(r.City),
		Province:         strings.TrimSpace(r.Province),
		CityOnly:         r.CityOnly,
		GenderPreference: strings.TrimSpace(r.GenderPreference),
		TopK:             intOr(r.TopK, defaultTopK),
	}, nil
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
