// Package validation holds the gates every upload request passes before a byte reaches disk.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
	"vaultcast/domain"
	"vaultcast/errors"
	"vaultcast/moderation"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
)

// DefaultMaxUploadSize 4 GiB, inclusive.
const DefaultMaxUploadSize int64 = 4 * units.GiB

var allowedExtensions = map[string]struct{}{
	"mp4":  {},
	"avi":  {},
	"mkv":  {},
	"mov":  {},
	"wmv":  {},
	"flv":  {},
	"webm": {},
}

type Validator struct {
	maxSize   int64
	moderator *moderation.Moderator
	validate  *validator.Validate
}

func NewValidator(maxSize int64, moderator *moderation.Moderator) *Validator {
	validate := validator.New()
	_ = validate.RegisterValidation("pathsegment", func(fl validator.FieldLevel) bool {
		return IsPathSegment(fl.Field().String())
	})
	return &Validator{maxSize: maxSize, moderator: moderator, validate: validate}
}

func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// IsSizeValid 0 < size <= max.
func (v *Validator) IsSizeValid(size int64) bool {
	return size > 0 && size <= v.maxSize
}

func (v *Validator) CheckSize(size int64) error {
	switch {
	case size <= 0:
		return errors.NewValidationError(errors.ReasonEmptyChunk, "file", errors.ErrEmptyChunk)
	case size > v.maxSize:
		return errors.NewValidationError(errors.ReasonPayloadTooLarge, "file",
			fmt.Errorf("%w: %s > %s", errors.ErrPayloadTooLarge, units.BytesSize(float64(size)), units.BytesSize(float64(v.maxSize))))
	default:
		return nil
	}
}

// Extension lower-cased text after the last dot of the cleaned base name, "" when there is none.
func Extension(fileName string) string {
	base := CleanFileName(fileName)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

func IsAllowedExtension(fileName string) bool {
	ext := Extension(fileName)
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// CleanFileName keeps the last path element of a client supplied name.
func CleanFileName(fileName string) string {
	normalized := strings.ReplaceAll(fileName, "\\", "/")
	base := filepath.Base(filepath.Clean("/" + normalized))
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// IsPathSegment reports whether s can be used as a single directory entry name.
func IsPathSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}

// IsDangerous case-insensitive denylist match on free text.
func (v *Validator) IsDangerous(text string) bool {
	return v.moderator.Contains(text)
}

// Censor masks denylisted markers so rejected text can be logged.
func (v *Validator) Censor(text string) string {
	return v.moderator.Censor(text)
}

// ValidateChunk checks run in order: shape, emptiness, size, extension, title, description.
func (v *Validator) ValidateChunk(req domain.ChunkUploadRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return errors.NewValidationError(errors.ReasonInvalidField, fieldOf(err), fmt.Errorf("%w: %v", errors.ErrInvalidField, err))
	}
	return v.validateContent(req.Size, req.Meta())
}

func (v *Validator) ValidateFile(req domain.FileUploadRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return errors.NewValidationError(errors.ReasonInvalidField, fieldOf(err), fmt.Errorf("%w: %v", errors.ErrInvalidField, err))
	}
	return v.validateContent(req.Size, req.Meta())
}

// ValidateStruct applies struct tags only.
func (v *Validator) ValidateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return errors.NewValidationError(errors.ReasonInvalidField, fieldOf(err), fmt.Errorf("%w: %v", errors.ErrInvalidField, err))
	}
	return nil
}

func (v *Validator) validateContent(size int64, meta domain.SessionMeta) error {
	if err := v.CheckSize(size); err != nil {
		return err
	}
	if !IsAllowedExtension(meta.OriginalFileName) {
		return errors.NewValidationError(errors.ReasonUnsupportedExtension, "originalFileName",
			fmt.Errorf("%w: %q", errors.ErrUnsupportedExt, Extension(meta.OriginalFileName)))
	}
	if v.IsDangerous(meta.Title) {
		return errors.NewValidationError(errors.ReasonDangerousTitle, "title",
			fmt.Errorf("%w: %v", errors.ErrDangerousContent, v.moderator.Matches(meta.Title)))
	}
	if v.IsDangerous(meta.Description) {
		return errors.NewValidationError(errors.ReasonDangerousDescription, "description",
			fmt.Errorf("%w: %v", errors.ErrDangerousContent, v.moderator.Matches(meta.Description)))
	}
	return nil
}

func fieldOf(err error) string {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return fieldErrs[0].Field()
	}
	return ""
}
