package persistence

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

//go:embed fixtures/tickets.yaml
var defaultSeed []byte

type seedFile struct {
	Tickets []seedTicket `yaml:"tickets"`
}

type seedTicket struct {
	ID          string                 `yaml:"id"`
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Status      string                 `yaml:"status"`
	Priority    string                 `yaml:"priority"`
	Requester   string                 `yaml:"requester"`
	Email       string                 `yaml:"email"`
	Assignee    string                 `yaml:"assignee"`
	Age         string                 `yaml:"age"`
	Tags        []string               `yaml:"tags"`
	Messages    []domain.TicketMessage `yaml:"messages"`
}

// LoadSeedTickets returns the tickets the view starts with. An empty path
// selects the embedded fixtures.
func LoadSeedTickets(path string, now time.Time, logger *zap.Logger) ([]domain.Ticket, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	content := defaultSeed
	source := "embedded"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		content = raw
		source = path
	}

	tickets, err := ParseSeed(content, now)
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", source, err)
	}
	logger.Info("seed tickets loaded", zap.String("source", source), zap.Int("count", len(tickets)))
	return tickets, nil
}

// ParseSeed decodes a YAML seed document. createdAt is now minus each
// ticket's age.
func ParseSeed(content []byte, now time.Time) ([]domain.Ticket, error) {
	var file seedFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(file.Tickets))
	tickets := make([]domain.Ticket, 0, len(file.Tickets))
	for i, raw := range file.Tickets {
		ticket, err := raw.toDomain(now)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i, err)
		}
		if _, dup := seen[ticket.ID]; dup {
			return nil, fmt.Errorf("ticket %d: duplicate id %s", i, ticket.ID)
		}
		seen[ticket.ID] = struct{}{}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (s seedTicket) toDomain(now time.Time) (domain.Ticket, error) {
	if s.ID == "" {
		return domain.Ticket{}, fmt.Errorf("missing id")
	}
	status, err := domain.ParseStatus(s.Status)
	if err != nil {
		return domain.Ticket{}, err
	}
	priority, err := domain.ParsePriority(s.Priority)
	if err != nil {
		return domain.Ticket{}, err
	}
	var age time.Duration
	if s.Age != "" {
		age, err = time.ParseDuration(s.Age)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("age: %w", err)
		}
	}

	ticket := domain.Ticket{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Status:      status,
		Priority:    priority,
		Requester:   s.Requester,
		Email:       s.Email,
		CreatedAt:   now.Add(-age).UnixMilli(),
		Tags:        s.Tags,
		Messages:    s.Messages,
	}
	if s.Assignee != "" {
		ticket.Assignee = domain.StringPtr(s.Assignee)
	}
	if ticket.Tags == nil {
		ticket.Tags = []string{}
	}
	if ticket.Messages == nil {
		ticket.Messages = []domain.TicketMessage{}
	}
	return ticket, nil
}
