package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/mailer"
)

// LeadService relays popup lead forms to the sales inbox. Leads are not stored.
type LeadService struct {
	Sender mailer.Sender
	Config mailer.Config
	now    func() time.Time
}

func NewLeadService(sender mailer.Sender, cfg mailer.Config) *LeadService {
	return &LeadService{Sender: sender, Config: cfg, now: time.Now}
}

// Notify validates the lead, checks the mail settings and sends one message.
// Nothing is sent when either check fails.
func (s *LeadService) Notify(ctx context.Context, lead *dtos.LeadRequest) error {
	if err := validateLead(lead); err != nil {
		return err
	}
	if err := s.Config.Validate(); err != nil {
		log.Printf("lead: not sent: %v", err)
		return err
	}
	if s.Sender == nil {
		return fmt.Errorf("%w: no mail transport", mailer.ErrNotConfigured)
	}

	msg := mailer.Message{
		From:    s.Config.From,
		To:      s.Config.To,
		ReplyTo: strings.TrimSpace(lead.Email),
		Subject: leadSubject(lead),
		Body:    leadBody(lead, s.now()),
	}
	if err := s.Sender.Send(ctx, msg); err != nil {
		log.Printf("lead: send %s lead failed: %v", lead.Kind, err)
		return fmt.Errorf("send lead: %w", err)
	}
	log.Printf("lead: %s lead relayed to %d recipient(s)", lead.Kind, len(msg.To))
	return nil
}

func validateLead(l *dtos.LeadRequest) error {
	var missing []string
	switch l.Kind {
	case dtos.LeadKindJobSeeker:
		if strings.TrimSpace(l.DesiredRole) == "" {
			missing = append(missing, "desired_role")
		}
	case dtos.LeadKindEmployer:
		if strings.TrimSpace(l.CompanyName) == "" {
			missing = append(missing, "company_name")
		}
		if strings.TrimSpace(l.HiringFor) == "" {
			missing = append(missing, "hiring_for")
		}
	default:
		return fmt.Errorf("%w: unknown lead kind %q", ErrInvalidInput, l.Kind)
	}
	if strings.TrimSpace(l.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(l.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(l.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func leadSubject(l *dtos.LeadRequest) string {
	if l.Kind == dtos.LeadKindEmployer {
		return fmt.Sprintf("New employer lead: %s (%s)", l.CompanyName, l.Name)
	}
	return fmt.Sprintf("New job seeker lead: %s", l.Name)
}

func leadBody(l *dtos.LeadRequest, at time.Time) string {
	rows := [][2]string{
		{"Name", l.Name},
		{"Email", l.Email},
		{"Phone", l.Phone},
		{"City", l.City},
	}
	if l.Kind == dtos.LeadKindEmployer {
		openings := ""
		if l.Openings > 0 {
			openings = strconv.Itoa(l.Openings)
		}
		rows = append(rows,
			[2]string{"Company", l.CompanyName},
			[2]string{"Hiring for", l.HiringFor},
			[2]string{"Openings", openings},
		)
	} else {
		exp := ""
		if l.ExperienceYears != nil {
			exp = fmt.Sprintf("%d years", *l.ExperienceYears)
		}
		rows = append(rows,
			[2]string{"Desired role", l.DesiredRole},
			[2]string{"Experience", exp},
			[2]string{"Skills", strings.Join(l.Skills, ", ")},
		)
	}
	if l.Message != "" {
		rows = append(rows, [2]string{"Message", l.Message})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A new %s lead was submitted on Hiring Dekho.\n\n", strings.ReplaceAll(l.Kind, "_", " "))
	for _, r := range rows {
		if strings.TrimSpace(r[1]) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", r[0], r[1])
	}
	fmt.Fprintf(&b, "\nReceived: %s\n", at.UTC().Format(time.RFC1123))
	return b.String()
}
