package models

import "time"

type Course struct {
	ID               string    `json:"_id"`
	Title            string    `json:"courseTitle"`
	Subtitle         string    `json:"subTitle,omitempty"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category,omitempty"`
	Level            string    `json:"courseLevel,omitempty"`
	Price            int64     `json:"coursePrice"`
	Thumbnail        string    `json:"courseThumbnail,omitempty"`
	CreatorID        string    `json:"creator,omitempty"`
	IsPublished      bool      `json:"isPublished"`
	EnrolledBuyerIDs []string  `json:"enrolledStudents"`
	Lectures         []Lecture `json:"lectures"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (c *Course) LectureIDs() []string {
	ids := make([]string, 0, len(c.Lectures))
	for _, l := range c.Lectures {
		ids = append(ids, l.ID)
	}
	return ids
}

// CourseSummary is the course projection returned alongside purchases.
type CourseSummary struct {
	ID        string `json:"_id"`
	Title     string `json:"courseTitle"`
	Price     int64  `json:"coursePrice"`
	Thumbnail string `json:"courseThumbnail,omitempty"`
}

type Lecture struct {
	ID            string `json:"_id"`
	CourseID      string `json:"courseId"`
	Title         string `json:"lectureTitle"`
	VideoURL      string `json:"videoUrl,omitempty"`
	Position      int    `json:"position"`
	IsPreviewFree bool   `json:"isPreviewFree"`
}

// CourseDetails is a course as seen by one buyer.
type CourseDetails struct {
	Course    *Course `json:"course"`
	Purchased bool    `json:"purchased"`
}
