package exercises

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one logged exercise session. Records are written by the
// activity-tracking service; this backend only ever reads them.
type Record struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	ExerciseType string             `bson:"exerciseType" json:"exerciseType"`
	Duration     int                `bson:"duration" json:"duration"` // minutes
	Date         time.Time          `bson:"date" json:"date"`
}

// TypeTotal is the grouped sum of duration and session count
// for one exercise type within a window.
type TypeTotal struct {
	ExerciseType  string `bson:"exerciseType" json:"exerciseType"`
	TotalDuration int    `bson:"totalDuration" json:"totalDuration"`
	SessionCount  int    `bson:"count" json:"count"`
}

// UserTotals holds the per-type totals of a single user.
type UserTotals struct {
	Username  string      `bson:"username" json:"username"`
	Exercises []TypeTotal `bson:"exercises" json:"exercises"`
}

// DayTotal is the summed duration of one calendar day.
type DayTotal struct {
	Date          string `json:"date"` // YYYY-MM-DD
	TotalDuration int    `json:"totalDuration"`
}

// ListParams filter and order a raw record listing.
type ListParams struct {
	Username    string
	From        *time.Time // inclusive
	To          *time.Time // exclusive when set
	NewestFirst bool
}

// BreakdownParams filter a per-type grouped aggregation.
type BreakdownParams struct {
	Username string
	From     *time.Time // inclusive
	To       *time.Time // exclusive when set
	Limit    int        // 0 -> no limit
}
