package upload

import (
	"strings"

	"github.com/honeycarbs/niceboard/internal/domain"
)

// missingFields lists required inputs absent from rec, in reporting order
func missingFields(rec *domain.JobRecord) []string {
	var missing []string
	if rec.CompanyID == nil && blank(rec.CompanyName) {
		missing = append(missing, "company_id or company_name")
	}
	if rec.LocationID == nil && blank(rec.Location) {
		missing = append(missing, "location_id or location")
	}
	if rec.JobTypeID == nil && blank(rec.JobType) {
		missing = append(missing, "jobtype_id or job_type")
	}
	if blank(rec.Title) {
		missing = append(missing, "title")
	}
	if blank(rec.DescriptionHTML) {
		missing = append(missing, "description_html")
	}
	if !rec.ApplyByForm && blank(rec.ApplyURL) && blank(rec.ApplyEmail) {
		missing = append(missing, "apply_url or apply_email")
	}
	return missing
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
