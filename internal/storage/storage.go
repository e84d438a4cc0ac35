package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const (
	commandHistoryLimit int = 20
	pourLogLimit        int = 50
)

// Patron is the per-user progress record. The store owns it; callers get a
// copy, mutate it, and hand back the full replacement value.
type Patron struct {
	Drinks       []string  `json:"drinks"`
	MessageCount int       `json:"message_count"`
	FirstSeen    time.Time `json:"first_seen"`
	LastPourAt   time.Time `json:"last_pour_at,omitempty"`
}

// Owns reports whether the patron already has the drink.
func (p *Patron) Owns(drinkID string) bool {
	for _, d := range p.Drinks {
		if d == drinkID {
			return true
		}
	}
	return false
}

// AddDrink adds a drink to the collection. Owning a drink twice is a no-op;
// the return value reports whether the set actually grew.
func (p *Patron) AddDrink(drinkID string) bool {
	if p.Owns(drinkID) {
		return false
	}
	p.Drinks = append(p.Drinks, drinkID)
	return true
}

// PourRecord is one entry in a guild's pour log.
type PourRecord struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	DrinkID string    `json:"drink_id"`
	Kind    string    `json:"kind"` // "welcome", "pour", "gift", "regular"
	At      time.Time `json:"at"`
}

// CommandRecord is one entry in a guild's command history.
type CommandRecord struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	ChannelID string    `json:"channel_id"`
	Datetime  time.Time `json:"datetime"`
}

// GuildRecord holds per-guild state. An absent record and a record without a
// bar channel are treated identically.
type GuildRecord struct {
	BarChannel      string          `json:"bar_channel,omitempty"`
	PourLog         []PourRecord    `json:"pour_log,omitempty"`
	CommandsHistory []CommandRecord `json:"cmd_history,omitempty"`
}

func (r *GuildRecord) empty() bool {
	return r.BarChannel == "" && len(r.PourLog) == 0 && len(r.CommandsHistory) == 0
}

type Storage struct {
	ds *datastore.DataStore
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func patronKey(userID string) string { return "patron:" + userID }
func guildKey(guildID string) string { return "guild:" + guildID }

// decode round-trips a stored value through JSON. The datastore hands back
// map[string]any after a file reload and the original struct before one;
// this handles both, the same way the record types are persisted.
func decode(data any, out any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling data: %w", err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		return fmt.Errorf("error unmarshalling record: %w", err)
	}
	return nil
}

func (s *Storage) getOrCreateGuildRecord(guildID string) (*GuildRecord, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		return &GuildRecord{}, nil
	}

	var record GuildRecord
	if err := decode(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) putGuildRecord(guildID string, record *GuildRecord) {
	if record.empty() {
		// A guild with nothing to remember is indistinguishable from one
		// never seen.
		s.ds.Delete(guildKey(guildID))
		return
	}
	s.ds.Add(guildKey(guildID), record)
}

// FetchPatron loads a patron's progress. The second return value is false
// for a user who has never been served.
func (s *Storage) FetchPatron(userID string) (Patron, bool, error) {
	data, exists := s.ds.Get(patronKey(userID))
	if !exists {
		return Patron{}, false, nil
	}

	var p Patron
	if err := decode(data, &p); err != nil {
		return Patron{}, false, err
	}
	return p, true, nil
}

// SetPatron stores the full replacement progress record for a user.
func (s *Storage) SetPatron(userID string, p Patron) error {
	s.ds.Add(patronKey(userID), p)
	return nil
}

// GetBarChannel returns the bound bar channel for a guild, if any.
func (s *Storage) GetBarChannel(guildID string) (string, bool) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil || record.BarChannel == "" {
		return "", false
	}
	return record.BarChannel, true
}

// SetBarChannel binds a channel as the guild's bar, overwriting any prior
// binding. At most one bar channel per guild.
func (s *Storage) SetBarChannel(guildID, channelID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.BarChannel = channelID
	s.putGuildRecord(guildID, record)
	return nil
}

// ClearBarChannel removes the binding entirely. A cleared guild behaves
// exactly like one that was never bound.
func (s *Storage) ClearBarChannel(guildID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.BarChannel = ""
	s.putGuildRecord(guildID, record)
	return nil
}

// AppendPourLog records a grant, keeping the newest pourLogLimit entries.
func (s *Storage) AppendPourLog(guildID string, rec PourRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.PourLog = append(record.PourLog, rec)
	if len(record.PourLog) > pourLogLimit {
		record.PourLog = record.PourLog[len(record.PourLog)-pourLogLimit:]
	}
	s.putGuildRecord(guildID, record)
	return nil
}

// FetchPourLog returns the guild's pour log, oldest first.
func (s *Storage) FetchPourLog(guildID string) ([]PourRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.PourLog, nil
}

// AppendCommandHistory records a command execution for a guild.
func (s *Storage) AppendCommandHistory(guildID string, rec CommandRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandsHistory = append(record.CommandsHistory, rec)
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	s.putGuildRecord(guildID, record)
	return nil
}

// FetchCommandHistory returns the guild's command history, oldest first.
func (s *Storage) FetchCommandHistory(guildID string) ([]CommandRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
