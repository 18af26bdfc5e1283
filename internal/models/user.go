package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ActivityLevelModerate is the default activity level assigned at signup
// until onboarding fills in the real profile.
const ActivityLevelModerate = "moderate"

// GoalTypeMaintenance is the default goal descriptor assigned at signup.
const GoalTypeMaintenance = "maintenance"

// Goals is the user's goal descriptor, stored as a JSON column.
type Goals struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
}

// Value implements driver.Valuer so bun stores Goals as JSON.
func (g Goals) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements sql.Scanner.
func (g *Goals) Scan(src any) error {
	return scanJSON(src, g)
}

// StringList is a JSON-encoded list of strings, used for dietary preferences.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// User is the user model. The password hash never serializes to JSON.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID                 int64      `bun:"id,pk,autoincrement" json:"id"`
	Username           string     `bun:"username,notnull,unique" json:"username"`
	Email              string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash       string     `bun:"password_hash,notnull" json:"-"`
	Name               string     `bun:"name,notnull" json:"name"`
	Age                int        `bun:"age" json:"age"`
	Gender             string     `bun:"gender" json:"gender"`
	Weight             int        `bun:"weight" json:"weight"`
	Height             int        `bun:"height" json:"height"`
	ActivityLevel      string     `bun:"activity_level" json:"activityLevel"`
	DietaryPreferences StringList `bun:"dietary_preferences" json:"dietaryPreferences"`
	Goals              Goals      `bun:"goals" json:"goals"`
	CreatedAt          *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
}

// EnsureProfileDefaults fills in the placeholder profile used between signup
// and onboarding.
func (u *User) EnsureProfileDefaults() *User {
	if u.ActivityLevel == "" {
		u.ActivityLevel = ActivityLevelModerate
	}
	if u.DietaryPreferences == nil {
		u.DietaryPreferences = StringList{}
	}
	if u.Goals.Type == "" {
		u.Goals = Goals{Type: GoalTypeMaintenance, Target: 0}
	}
	return u
}
