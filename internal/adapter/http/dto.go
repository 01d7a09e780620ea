package http

import (
	"encoding/json"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

type createResumeRequest struct {
	OwnerID  string        `json:"ownerId"`
	Document *model.Resume `json:"document,omitempty"`
}

type fieldOpRequest struct {
	Op    string          `json:"op"`
	Field model.Field     `json:"field"`
	Value json.RawMessage `json:"value"`
	Save  bool            `json:"save"`
}

const (
	opReplaceList = "replaceList"
	opMergeMap    = "mergeMap"
	opSetScalar   = "setScalar"
)

type personalRequest struct {
	FirstName   *string           `json:"firstName"`
	LastName    *string           `json:"lastName"`
	JobTitle    *string           `json:"jobTitle"`
	Address     *string           `json:"address"`
	Phone       *string           `json:"phone"`
	Email       *string           `json:"email"`
	SocialLinks map[string]string `json:"socialLinks"`
}

func (r personalRequest) fields() map[model.Field]*string {
	return map[model.Field]*string{
		model.FieldFirstName: r.FirstName,
		model.FieldLastName:  r.LastName,
		model.FieldJobTitle:  r.JobTitle,
		model.FieldAddress:   r.Address,
		model.FieldPhone:     r.Phone,
		model.FieldEmail:     r.Email,
	}
}

type listRequest[T any] struct {
	Items []T `json:"items"`
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type templateRequest struct {
	Template string `json:"template"`
}

type themeRequest struct {
	ThemeColor string `json:"themeColor"`
}

type sessionResponse struct {
	ID           string             `json:"id"`
	Resume       model.Resume       `json:"resume"`
	Version      uint64             `json:"version"`
	SectionOrder []model.SectionKey `json:"sectionOrder"`
	LoadError    string             `json:"loadError,omitempty"`
}

type listResponse[T any] struct {
	Items []T    `json:"items"`
	State string `json:"state"`
}

type suggestionResponse struct {
	Suggestion string `json:"suggestion"`
}
