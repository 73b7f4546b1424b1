package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pancakes/admin-service/internal/models"
)

func ValidateBanUser(req models.BanUserRequest, now time.Time) Result {
	var errs errorList
	errs.add(ValidateID(req.UserID, "UserId"))
	errs.add(ValidateReason(req.Reason, MinReasonLength, MaxReasonLength))
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		errs.add("Ban expiration must be in the future")
	}
	if ContainsSQLInjection(req.Reason) {
		errs.add("Invalid characters detected")
	}
	return errs.result()
}

// ValidateUnbanUser: the reason is optional for unbans.
func ValidateUnbanUser(req models.UnbanUserRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.UserID, "UserId"))
	if utf8.RuneCountInString(req.Reason) > MaxUnbanReasonLength {
		errs.add("Unban reason too long (max 500 characters)")
	}
	if ContainsSQLInjection(req.Reason) {
		errs.add("Invalid characters detected")
	}
	return errs.result()
}

func ValidateUpdateUser(req models.UpdateUserRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.UserID, "UserId"))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs.add("Name is required")
	} else if utf8.RuneCountInString(name) > 255 {
		errs.add("Name too long (max 255 characters)")
	}

	if strings.TrimSpace(req.Email) == "" {
		errs.add("Email is required")
	} else if !IsValidEmail(req.Email) {
		errs.add("Invalid email format")
	}

	if utf8.RuneCountInString(req.Bio) > 2000 {
		errs.add("Bio too long (max 2000 characters)")
	}
	if utf8.RuneCountInString(req.PhoneNumber) > 32 {
		errs.add("Phone number too long (max 32 characters)")
	}
	for _, s := range []string{req.Name, req.Bio} {
		if ContainsSQLInjection(s) {
			errs.add("Invalid characters detected")
			break
		}
	}
	return errs.result()
}

func ValidateDeleteBlogPost(req models.DeleteBlogPostRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.BlogPostID, "BlogPostId"))
	errs.add(ValidateReason(req.Reason, MinReasonLength, MaxReasonLength))
	if ContainsSQLInjection(req.Reason) {
		errs.add("Invalid characters detected in reason")
	}
	return errs.result()
}

func ValidateUpdateBlogPostStatus(req models.UpdateBlogPostStatusRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.BlogPostID, "BlogPostId"))
	if !req.Status.Valid() {
		errs.add("Invalid status value. Must be 0 (Draft), 1 (Published), or 2 (Deleted)")
	}
	errs.add(ValidateReason(req.Reason, MinReasonLength, MaxReasonLength))
	if ContainsSQLInjection(req.Reason) {
		errs.add("Invalid characters detected in reason")
	}
	return errs.result()
}

func ValidateForcePasswordReset(req models.ForcePasswordResetRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.UserID, "UserId"))
	errs.add(ValidateReason(req.Reason, MinReasonLength, MaxReasonLength))
	if ContainsSQLInjection(req.Reason) {
		errs.add("Invalid characters detected")
	}
	return errs.result()
}

func ValidateUpdateReport(req models.UpdateReportRequest) Result {
	var errs errorList
	errs.add(ValidateID(req.ReportID, "ReportId"))
	if !req.Status.Valid() {
		errs.add("Invalid status value. Must be 0 (Pending), 1 (UnderReview), 2 (Resolved), or 3 (Dismissed)")
	}
	if utf8.RuneCountInString(req.AdminNotes) > MaxReasonLength {
		errs.add("Admin notes too long (max 1000 characters)")
	}
	if ContainsSQLInjection(req.AdminNotes) {
		errs.add("Invalid characters detected in admin notes")
	}
	return errs.result()
}

func ValidateDeleteReport(reportID string) Result {
	var errs errorList
	errs.add(ValidateID(reportID, "ReportId"))
	return errs.result()
}

var configKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.:-]{1,100}$`)

func ValidateSystemConfig(req models.SystemConfigRequest) Result {
	var errs errorList
	key := strings.TrimSpace(req.Key)
	if key == "" {
		errs.add("Key is required")
	} else if !configKeyPattern.MatchString(key) {
		errs.add("Invalid Key format")
	}

	if strings.TrimSpace(req.Value) == "" {
		errs.add("Value is required")
	} else if utf8.RuneCountInString(req.Value) > 4000 {
		errs.add("Value too long (max 4000 characters)")
	}

	if utf8.RuneCountInString(req.Description) > 500 {
		errs.add("Description too long (max 500 characters)")
	}
	if utf8.RuneCountInString(req.Category) > 50 {
		errs.add("Category too long (max 50 characters)")
	}
	return errs.result()
}

// ValidateConfigKey checks a key taken from the route.
func ValidateConfigKey(key string) Result {
	var errs errorList
	if strings.TrimSpace(key) == "" {
		errs.add("Key is required")
	} else if !configKeyPattern.MatchString(key) {
		errs.add("Invalid Key format")
	}
	return errs.result()
}
