package ai

import (
	"context"
)

// Client is the interface for text-completion providers.
type Client interface {
	// Complete sends a prompt and returns the model's free-text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// SummaryPrompt asks the model for a concise digest of a job listing.
func SummaryPrompt(pageText string) string {
	return "Please read this job listing and write a concise summary of required skills, degrees, etc:\n\n" + pageText
}

// MatchPrompt asks the model to rate resume/job fit on a 1-10 scale.
func MatchPrompt(resume, jobSummary string) string {
	return "Read the applicant's RESUME and JOB SUMMARY below and determine if the applicant is a good fit for this job on a scale of 1 to 10. " +
		"1 is a bad fit, 10 is a perfect fit. REPLY WITH AN INTEGER 1-10!!!\n\nRESUME:  " + resume + "\n\nJOB SUMMARY:  " + jobSummary
}
