package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Practice-type tags that unlock extra fields on an Entry.
const (
	PracticeTypeProject = "Work on a Project"
	PracticeTypeOther   = "Other"
)

type User struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	Updated      int64  `json:"updated" db:"updated"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
}

// Entry is one logged practice session. Entries are create-only: once
// stored they are never edited or deleted, so aggregation may treat the
// fetched set as immutable.
type Entry struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"userId" db:"user_id"`
	Skills            StringList `json:"skills" db:"skills"`
	HoursSpent        Hours      `json:"hoursSpent" db:"hours_spent"`
	StartDate         string     `json:"startDate" db:"start_date"`
	EndDate           string     `json:"endDate" db:"end_date"`
	PracticeType      StringList `json:"practiceType" db:"practice_type"`
	ProjectName       *string    `json:"projectName,omitempty" db:"project_name"`
	OtherPracticeType *string    `json:"otherPracticeType,omitempty" db:"other_practice_type"`
	Result            StringList `json:"result" db:"result"`
	Notes             string     `json:"notes" db:"notes"`
	Created           int64      `json:"created" db:"created"`
}

// Hours is a practice duration. Decoding is tolerant: a value that is
// not a JSON number decodes to an invalid Hours instead of failing the
// surrounding document, so one bad record cannot abort a bulk fetch.
type Hours float64

func (h Hours) Valid() bool {
	return !math.IsNaN(float64(h)) && h > 0
}

func (h *Hours) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*h = Hours(math.NaN())
		return nil
	}
	*h = Hours(f)
	return nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	f := float64(h)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// StringList decodes a JSON array of strings, a lone string (wrapped
// into a one-element list) or anything else (nil). Mirrors the loose
// shapes the entry producer has emitted over time.
type StringList []string

func (s *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	*s = nil
	return nil
}

func (s StringList) Contains(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Option types.
const (
	OptionTypeSkill        = "skill"
	OptionTypeResult       = "result"
	OptionTypePracticeType = "practiceType"
)

// Option is one configurable choice offered by the entry form. Icon and
// Image belong to the practiceType variant only; Validate enforces the
// per-type field rules so the record behaves as a tagged variant.
type Option struct {
	ID      string `json:"id" db:"id"`
	Type    string `json:"type" db:"type"`
	Value   string `json:"value" db:"value"`
	Icon    string `json:"icon,omitempty" db:"icon"`
	Image   string `json:"image,omitempty" db:"image"`
	Updated int64  `json:"updated" db:"updated"`
}

func (o *Option) Validate() error {
	if o.Value == "" {
		return fmt.Errorf("option value is required")
	}
	switch o.Type {
	case OptionTypeSkill, OptionTypeResult:
		if o.Icon != "" || o.Image != "" {
			return fmt.Errorf("icon and image are only valid for %s options", OptionTypePracticeType)
		}
	case OptionTypePracticeType:
		// icon/image optional
	default:
		return fmt.Errorf("unknown option type %q", o.Type)
	}
	return nil
}

// PasswordReset is a one-time reset code issued by forgot-password. The
// code itself is never stored, only its hash.
type PasswordReset struct {
	ID       int64  `json:"id" db:"id"`
	UserID   string `json:"user_id" db:"user_id"`
	CodeHash string `json:"-" db:"code_hash"`
	Expires  int64  `json:"expires" db:"expires"`
	Used     bool   `json:"used" db:"used"`
	Created  int64  `json:"created" db:"created"`
}
