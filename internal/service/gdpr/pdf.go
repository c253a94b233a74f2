package gdpr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/gdpr"
)

// writeExportPDF renders the subject's data bundle to a PDF under
// <storagePath>/gdpr/<requestID>.pdf and returns the file path.
func writeExportPDF(storagePath, requestID string, bundle *gdpr.ExportBundle) (string, error) {
	dir := filepath.Join(storagePath, "gdpr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	filePath := filepath.Join(dir, requestID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Personal Data Export")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Employee Record")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	emp := bundle.Employee
	pdf.Cell(0, 7, fmt.Sprintf("Name: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Job title: %s", emp.JobTitle))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", emp.Department))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Hired: %s", emp.HiredAt.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Employment status: %s", emp.EmploymentStatus))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Performance Reviews (%d)", len(bundle.Reviews)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range bundle.Reviews {
		kind := "Manager review"
		if r.IsSelfAssessment {
			kind = "Self reflection"
		}
		state := "draft"
		if r.IsCommitted {
			state = "committed"
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s, week ending %s (%s)", kind, r.ReviewDate.Format("2006-01-02"), state))
		pdf.Ln(6)
		if r.Goals != "" {
			pdf.MultiCell(0, 6, fmt.Sprintf("Goals: %s", r.Goals), "", "L", false)
		}
		if r.Achievements != "" {
			pdf.MultiCell(0, 6, fmt.Sprintf("Achievements: %s", r.Achievements), "", "L", false)
		}
		pdf.Ln(2)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Leave Requests (%d)", len(bundle.LeaveRequests)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range bundle.LeaveRequests {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s to %s, %d day(s), %s",
			l.Type, l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.TotalDays, l.Status))
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("failed to write export pdf: %w", err)
	}

	return filePath, nil
}
