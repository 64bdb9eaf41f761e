package applicationmock

import (
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

const day = 24 * time.Hour

type seedRecord struct {
	id, fullName, email, phone, linkedin, portfolio string
	position, notes, resume                          string
	status                                           application.Status
	submittedAgo, updatedAgo                         time.Duration
}

var seedRecords = []seedRecord{
	{
		id: "1", fullName: "Alice Johnson", email: "alice.johnson@email.com", phone: "+1-555-0123",
		linkedin: "https://linkedin.com/in/alice-johnson", portfolio: "https://alicejohnson.dev",
		position: "Frontend Developer", notes: "I have 3 years of experience in React and TypeScript.",
		resume: "alice_johnson_resume.pdf", status: application.StatusNew,
		submittedAgo: 2 * day, updatedAgo: 2 * day,
	},
	{
		id: "2", fullName: "Bob Smith", email: "bob.smith@email.com", phone: "+1-555-0456",
		position: "Backend Developer", notes: "Experienced with Node.js, Python, and cloud technologies.",
		resume: "bob_smith_resume.pdf", status: application.StatusReviewed,
		submittedAgo: 5 * day, updatedAgo: 3 * day,
	},
	{
		id: "3", fullName: "Carol Williams", email: "carol.williams@email.com", phone: "+1-555-0789",
		linkedin: "https://linkedin.com/in/carol-williams",
		position: "Full Stack Developer", notes: "Proficient in both frontend and backend technologies. Looking for new challenges.",
		resume: "carol_williams_resume.pdf", status: application.StatusShortlisted,
		submittedAgo: 7 * day, updatedAgo: 1 * day,
	},
	{
		id: "4", fullName: "David Brown", email: "david.brown@email.com", phone: "+1-555-0321",
		portfolio: "https://davidbrown.portfolio.com",
		position: "UI/UX Designer", notes: "Creative designer with 5 years of experience in user interface design.",
		resume: "david_brown_resume.pdf", status: application.StatusRejected,
		submittedAgo: 10 * day, updatedAgo: 8 * day,
	},
	{
		id: "5", fullName: "Emma Davis", email: "emma.davis@email.com", phone: "+1-555-0654",
		linkedin: "https://linkedin.com/in/emma-davis", portfolio: "https://emmadavis.com",
		position: "Frontend Developer", notes: "Passionate about creating accessible and performant web applications.",
		resume: "emma_davis_resume.pdf", status: application.StatusNew,
		submittedAgo: 1 * day, updatedAgo: 1 * day,
	},
}

// SeedApplications returns the five demo applications with timestamps relative to now
func SeedApplications(now time.Time) []application.AdminApplication {
	apps := make([]application.AdminApplication, 0, len(seedRecords))
	for _, r := range seedRecords {
		apps = append(apps, application.AdminApplication{Application: application.Application{
			ID:               kernel.ApplicationID(r.id),
			FullName:         r.fullName,
			Email:            kernel.Email(r.email),
			PhoneNumber:      r.phone,
			LinkedinProfile:  r.linkedin,
			PortfolioWebsite: r.portfolio,
			JobPosition:      kernel.JobPosition(r.position),
			AdditionalNotes:  r.notes,
			ResumeFileName:   r.resume,
			ResumeFileURL:    application.ResumeURLFor(r.resume),
			Status:           r.status,
			SubmittedAt:      now.Add(-r.submittedAgo),
			UpdatedAt:        now.Add(-r.updatedAgo),
		}})
	}
	return apps
}
