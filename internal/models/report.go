package models

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
)

// Report is a community traffic observation ranked by its net vote score.
type Report struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID    string       `gorm:"size:128;not null;index" json:"author_id"`
	AuthorName  string       `gorm:"size:32;not null" json:"author_name"`
	Title       string       `gorm:"size:120;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Location    string       `gorm:"size:255;not null;index" json:"location"`
	Category    string       `gorm:"size:30;not null;index" json:"category"`
	NetScore    int          `gorm:"not null;default:0;index" json:"net_score"`
	Upvoters    []string     `gorm:"-" json:"upvoters"`
	Downvoters  []string     `gorm:"-" json:"downvoters"`
	Votes       []ReportVote `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ReportVote is one user's current vote on a report. The unique index keeps
// the upvoter and downvoter sets free of duplicates and disjoint.
type ReportVote struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_report_votes_report_user" json:"report_id"`
	UserID    string           `gorm:"size:128;not null;uniqueIndex:idx_report_votes_report_user" json:"user_id"`
	Direction voting.Direction `gorm:"size:4;not null" json:"direction"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FillVoters derives Upvoters and Downvoters from the loaded vote rows.
func (r *Report) FillVoters() {
	r.Upvoters = make([]string, 0)
	r.Downvoters = make([]string, 0)
	for _, v := range r.Votes {
		switch v.Direction {
		case voting.Up:
			r.Upvoters = append(r.Upvoters, v.UserID)
		case voting.Down:
			r.Downvoters = append(r.Downvoters, v.UserID)
		}
	}
	sort.Strings(r.Upvoters)
	sort.Strings(r.Downvoters)
}
