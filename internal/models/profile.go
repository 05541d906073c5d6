package models

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
)

var Proficiencies = []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced}

func (p Proficiency) Valid() bool {
	for _, v := range Proficiencies {
		if p == v {
			return true
		}
	}
	return false
}

type Timeline string

const (
	TimelineThreeMonths Timeline = "3 Months"
	TimelineSixMonths   Timeline = "6 Months"
	TimelineOneYear     Timeline = "1 Year"
)

var Timelines = []Timeline{TimelineThreeMonths, TimelineSixMonths, TimelineOneYear}

func (t Timeline) Valid() bool {
	for _, v := range Timelines {
		if t == v {
			return true
		}
	}
	return false
}

type LearningStyle string

const (
	LearningStyleVideos   LearningStyle = "Videos"
	LearningStyleProjects LearningStyle = "Projects"
	LearningStyleReading  LearningStyle = "Reading"
	LearningStyleMixed    LearningStyle = "Mixed"
)

var LearningStyles = []LearningStyle{
	LearningStyleVideos,
	LearningStyleProjects,
	LearningStyleReading,
	LearningStyleMixed,
}

func (l LearningStyle) Valid() bool {
	for _, v := range LearningStyles {
		if l == v {
			return true
		}
	}
	return false
}

type Education struct {
	Degree string `json:"degree"`
	Branch string `json:"branch"`
	Year   string `json:"year"`
}

// UserProfile is the intake form payload handed to the analyzer.
type UserProfile struct {
	Education     Education     `json:"education"`
	Skills        []string      `json:"skills"`
	Proficiency   Proficiency   `json:"proficiency"`
	TargetRoles   []string      `json:"targetRoles"`
	Availability  string        `json:"availability"`
	Timeline      Timeline      `json:"timeline"`
	LearningStyle LearningStyle `json:"learningStyle"`
}

// NewUserProfile returns the blank draft a new wizard starts from.
func NewUserProfile() UserProfile {
	return UserProfile{
		Skills:        []string{},
		Proficiency:   ProficiencyBeginner,
		TargetRoles:   []string{},
		Timeline:      TimelineSixMonths,
		LearningStyle: LearningStyleMixed,
	}
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Skills = append([]string{}, p.Skills...)
	out.TargetRoles = append([]string{}, p.TargetRoles...)
	return out
}
