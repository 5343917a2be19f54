package catalog

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	catalogSvc "filedex/internal/domain/services/catalog"
)

// MaxNodeNameLength bounds folder and file names.
const MaxNodeNameLength = 255

// nameCharset rejects the characters that break path semantics or common
// filesystems: < > : " / \ | ? *
var nameCharset = regexp.MustCompile(`^[^<>:"/\\|?*]+$`)

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, MaxNodeNameLength),
		validation.Match(nameCharset).Error("name contains invalid characters"),
	}
}

func validateCreateFolderRequest(req *catalogSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules()...),
	)
}

func validateUpdateFolderRequest(req *catalogSvc.UpdateFolderRequest) error {
	rules := []*validation.FieldRules{}
	if req.Name != nil {
		rules = append(rules, validation.Field(&req.Name, nameRules()...))
	}
	return validation.ValidateStruct(req, rules...)
}

func validateCreateFileRequest(req *catalogSvc.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules()...),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Size, validation.Min(int64(0))),
	)
}

func validateUpdateFileRequest(req *catalogSvc.UpdateFileRequest) error {
	rules := []*validation.FieldRules{}
	if req.Name != nil {
		rules = append(rules, validation.Field(&req.Name, nameRules()...))
	}
	if req.Size != nil {
		rules = append(rules, validation.Field(&req.Size, validation.Min(int64(0))))
	}
	return validation.ValidateStruct(req, rules...)
}

func validateSearchTerm(term string) error {
	return validation.Validate(term,
		validation.Required,
		validation.Length(1, MaxNodeNameLength),
	)
}
