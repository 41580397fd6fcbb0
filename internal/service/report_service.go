package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/interviewgenius/server/internal/domain"

	"github.com/go-pdf/fpdf"
)

var ErrReportNotReady = errors.New("report is only available once results are ready")

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildReport renders the results of a finished interview as a PDF score
// report: overall feedback followed by the full question/answer transcript.
func (s *ReportService) BuildReport(sess *domain.Session) ([]byte, error) {
	if sess.Phase != domain.PhaseResults || sess.Overall == nil {
		return nil, ErrReportNotReady
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, "Interview Report")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 9)
	role := ""
	if sess.Config != nil {
		role = fmt.Sprintf("%s  |  %s  |  %d questions", sess.Config.Role, sess.Config.Difficulty, len(sess.Questions))
	}
	pdf.Cell(0, 5, role)
	pdf.Ln(8)

	s.addSection(pdf, "OVERALL RESULT")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, fmt.Sprintf("Score: %d / 100", sess.Overall.Score))
	pdf.Ln(6)
	if sess.Overall.Duration != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, fmt.Sprintf("Duration: %s", sess.Overall.Duration))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4, sess.Overall.Summary, "", "", false)
	pdf.Ln(3)

	if len(sess.Overall.Strengths) > 0 {
		s.addSection(pdf, "STRENGTHS")
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range sess.Overall.Strengths {
			pdf.CellFormat(5, 4, "-", "", 0, "", false, 0, "")
			pdf.MultiCell(0, 4, item, "", "", false)
		}
		pdf.Ln(2)
	}

	if len(sess.Overall.Improvements) > 0 {
		s.addSection(pdf, "AREAS FOR IMPROVEMENT")
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range sess.Overall.Improvements {
			pdf.CellFormat(5, 4, "-", "", 0, "", false, 0, "")
			pdf.MultiCell(0, 4, item, "", "", false)
		}
		pdf.Ln(2)
	}

	s.addSection(pdf, "TRANSCRIPT")
	for i, q := range sess.Questions {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, fmt.Sprintf("Q%d. %s", i+1, q.Text), "", "", false)

		answer := domain.NoAnswerPlaceholder
		var feedback string
		if rec, ok := sess.Answers[q.ID]; ok {
			if rec.Answer != "" {
				answer = rec.Answer
			}
			feedback = rec.Feedback
		}

		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 4, fmt.Sprintf("Answer: %s", answer), "", "", false)
		if feedback != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 4, fmt.Sprintf("Feedback: %s", feedback), "", "", false)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) addSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(40, 40, 40)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
	pdf.SetDrawColor(180, 180, 180)
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.Line(x, y, 195, y)
	pdf.Ln(2)
	pdf.SetTextColor(0, 0, 0)
}
