package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case []User:
		o.printUsers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Invite:
		o.printInvite(v)
	case []Invite:
		o.printInvites(v)
	case Campaign:
		o.printCampaign(v)
	case []Campaign:
		o.printCampaigns(v)
	case []PrepDay:
		o.printPrepDays(v)
	case []Slot:
		o.printSlots(v)
	case ScoreTotals:
		o.printScoreTotals(v)
	case []Alliance:
		o.printAlliances(v)
	case []AuditEntry:
		o.printAuditEntries(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	PlayerID      string `json:"player_id,omitempty"`
	IngameName    string `json:"ingame_name,omitempty"`
	Alliance      string `json:"alliance,omitempty"`
	IsPlaceholder bool   `json:"is_placeholder"`
	AuthLinked    bool   `json:"auth_linked"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Invite response type
type Invite struct {
	Email      string    `json:"email"`
	PlayerID   string    `json:"player_id"`
	IngameName string    `json:"ingame_name"`
	Alliance   string    `json:"alliance"`
	InvitedBy  string    `json:"invited_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Campaign response type
type Campaign struct {
	ID            string     `json:"id"`
	OpponentState string     `json:"opponent_state"`
	BattleDate    time.Time  `json:"battle_date"`
	Status        string     `json:"status"`
	Victor        string     `json:"victor,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// PrepDay response type
type PrepDay struct {
	Day            string `json:"day"`
	Weekday        string `json:"weekday"`
	Role           string `json:"role,omitempty"`
	SelfPoints     int64  `json:"self_points"`
	OpponentPoints int64  `json:"opponent_points"`
}

// Slot response type
type Slot struct {
	ID         string    `json:"id"`
	Day        string    `json:"day"`
	Role       string    `json:"role"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Reserved   bool      `json:"reserved"`
	PlayerID   string    `json:"player_id,omitempty"`
	IngameName string    `json:"ingame_name,omitempty"`
	Alliance   string    `json:"alliance,omitempty"`
}

// ScoreTotals response type
type ScoreTotals struct {
	SelfPoints     int64 `json:"self_points"`
	OpponentPoints int64 `json:"opponent_points"`
	Differential   int64 `json:"differential"`
}

// Alliance response type
type Alliance struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// AuditEntry response type
type AuditEntry struct {
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id,omitempty"`
	Action      string    `json:"action"`
	PlayerID    string    `json:"player_id,omitempty"`
	PerformedBy string    `json:"performed_by,omitempty"`
	Severity    string    `json:"severity"`
	PerformedAt time.Time `json:"performed_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	fmt.Printf("Status: %s\n", u.Status)
	if u.PlayerID != "" {
		fmt.Printf("Player ID: %s\n", u.PlayerID)
	}
	if u.IngameName != "" {
		fmt.Printf("In-game Name: %s\n", u.IngameName)
	}
	if u.Alliance != "" {
		fmt.Printf("Alliance: %s\n", u.Alliance)
	}
	if u.IsPlaceholder {
		fmt.Println("Placeholder: yes")
	}
}

func (o *Output) printUsers(users []User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		placeholder := ""
		if u.IsPlaceholder {
			placeholder = " [placeholder]"
		}
		fmt.Printf("  - %s  %s/%s  %s (%s)%s\n", u.Email, u.Role, u.Status, u.IngameName, u.PlayerID, placeholder)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printInvite(i Invite) {
	fmt.Printf("Invite: %s\n", i.Email)
	fmt.Printf("Player ID: %s\n", i.PlayerID)
	fmt.Printf("In-game Name: %s\n", i.IngameName)
	fmt.Printf("Alliance: %s\n", i.Alliance)
	if i.InvitedBy != "" {
		fmt.Printf("Invited By: %s\n", i.InvitedBy)
	}
}

func (o *Output) printInvites(invites []Invite) {
	fmt.Printf("Active invites (%d):\n", len(invites))
	for _, i := range invites {
		fmt.Printf("  - %s  %s (%s) [%s]\n", i.Email, i.IngameName, i.PlayerID, i.Alliance)
	}
}

func (o *Output) printCampaign(c Campaign) {
	fmt.Printf("Campaign: %s\n", c.ID)
	fmt.Printf("Opponent: %s\n", c.OpponentState)
	fmt.Printf("Battle Date: %s\n", c.BattleDate.Format("2006-01-02"))
	fmt.Printf("Status: %s\n", c.Status)
	if c.Victor != "" {
		fmt.Printf("Victor: %s\n", c.Victor)
	}
	if c.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", c.CompletedAt.Format(time.RFC3339))
	}
}

func (o *Output) printCampaigns(campaigns []Campaign) {
	fmt.Printf("Campaigns (%d):\n", len(campaigns))
	for _, c := range campaigns {
		victor := ""
		if c.Victor != "" {
			victor = " victor=" + c.Victor
		}
		fmt.Printf("  - %s  vs %s  %s%s\n", c.ID, c.OpponentState, c.Status, victor)
	}
}

func (o *Output) printPrepDays(days []PrepDay) {
	fmt.Printf("Prep days (%d):\n", len(days))
	for _, d := range days {
		role := d.Role
		if role == "" {
			role = "-"
		}
		fmt.Printf("  %s (%s)  role=%s  self=%d opponent=%d\n", d.Day, d.Weekday, role, d.SelfPoints, d.OpponentPoints)
	}
}

func (o *Output) printSlots(slots []Slot) {
	fmt.Printf("Slots (%d):\n", len(slots))
	for _, s := range slots {
		if s.Reserved {
			fmt.Printf("  %s  %s  %s (%s) [%s]\n", s.ID, s.StartTime.Format("15:04"), s.IngameName, s.PlayerID, s.Alliance)
		} else {
			fmt.Printf("  %s  %s  free\n", s.ID, s.StartTime.Format("15:04"))
		}
	}
}

func (o *Output) printScoreTotals(t ScoreTotals) {
	fmt.Printf("Self: %d\n", t.SelfPoints)
	fmt.Printf("Opponent: %d\n", t.OpponentPoints)
	fmt.Printf("Differential: %+d\n", t.Differential)
}

func (o *Output) printAlliances(alliances []Alliance) {
	fmt.Printf("Alliances (%d):\n", len(alliances))
	for _, a := range alliances {
		fmt.Printf("  [%s] %s  %s\n", a.Tag, a.Name, a.Status)
	}
}

func (o *Output) printAuditEntries(entries []AuditEntry) {
	fmt.Printf("Audit entries (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s  %-8s  %s/%s  by %s\n",
			e.PerformedAt.Format(time.RFC3339), e.Severity, e.EntityType, e.Action, e.PerformedBy)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
