// Package catalog holds the static gamification configuration: achievement
// rules, title tiers and challenge templates. It is loaded once at process
// start and never mutated afterwards, so evaluation logic stays free of
// hard-coded thresholds.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Metric names a fact from the evaluation context that a rule thresholds on.
const (
	MetricCurrentStreak     = "current_streak"
	MetricPRTotal           = "pr_total"
	MetricPRMonth           = "pr_month"
	MetricWorkoutsCompleted = "workouts_completed"
	MetricFriendsAccepted   = "friends_accepted"
	MetricProgressPhotos    = "progress_photos"
)

// PointsPerLevel is the fixed cost of one level.
const PointsPerLevel = 1000

const DefaultTitle = "Rookie Lifter"

type AchievementRule struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"` // "streak", "pr", "milestone", "social", "progress"
	Metric      string `json:"metric"`
	Threshold   int64  `json:"threshold"`
	Points      int    `json:"points"`
	BadgeURL    string `json:"badge_url"`
	MemeURL     string `json:"meme_url"`
}

type TitleTier struct {
	MinLevel int    `json:"min_level"`
	Title    string `json:"title"`
}

type ChallengeTemplate struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetValue  int    `json:"target_value"`
	RewardPoints int    `json:"reward_points"`
}

type Catalog struct {
	Achievements     []AchievementRule   `json:"achievements"`
	Titles           []TitleTier         `json:"titles"`
	DailyChallenges  []ChallengeTemplate `json:"daily_challenges"`
	WeeklyChallenges []ChallengeTemplate `json:"weekly_challenges"`
}

// Load returns the built-in catalog, or the JSON document at path when path
// is non-empty. Titles are kept sorted ascending by MinLevel so that
// ResolveTitle can scan from the highest tier down.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		cat = &Catalog{}
		if err := json.Unmarshal(data, cat); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
	}

	sort.Slice(cat.Titles, func(i, j int) bool {
		return cat.Titles[i].MinLevel < cat.Titles[j].MinLevel
	})

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Achievements))
	for _, rule := range c.Achievements {
		if rule.Name == "" {
			return fmt.Errorf("achievement rule with empty name")
		}
		if seen[rule.Name] {
			return fmt.Errorf("duplicate achievement rule %q", rule.Name)
		}
		seen[rule.Name] = true
		if rule.Threshold <= 0 {
			return fmt.Errorf("achievement rule %q: threshold must be positive", rule.Name)
		}
		if rule.Points < 0 {
			return fmt.Errorf("achievement rule %q: points must not be negative", rule.Name)
		}
	}
	return nil
}

// ResolveLevel derives the level from the accumulated point total. It is the
// single source of truth for leveling: level is never stored independently of
// this derivation.
func ResolveLevel(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return 1 + totalPoints/PointsPerLevel
}

// ResolveTitle picks the title of the greatest tier whose MinLevel does not
// exceed level. Tiers are sorted ascending, so the last qualifying one wins;
// when no tier qualifies the level-1 default applies.
func (c *Catalog) ResolveTitle(level int) string {
	title := DefaultTitle
	for _, tier := range c.Titles {
		if tier.MinLevel > level {
			break
		}
		title = tier.Title
	}
	return title
}

// Default is the compiled-in catalog, mirroring the product's launch content.
func Default() *Catalog {
	return &Catalog{
		Achievements: []AchievementRule{
			{
				Name:        "No Cap Streak",
				Description: "7-day workout streak! Fr fr you're killing it! 🔥",
				Type:        "streak",
				Metric:      MetricCurrentStreak,
				Threshold:   7,
				Points:      100,
				BadgeURL:    "https://img.shields.io/badge/Streak-7%20Days-bronze?style=for-the-badge&logo=firebase&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o6ZtrbzjGAAXyx2WQ/giphy.gif",
			},
			{
				Name:        "Main Character Energy",
				Description: "30-day streak! You're literally that girl/guy! 💅",
				Type:        "streak",
				Metric:      MetricCurrentStreak,
				Threshold:   30,
				Points:      500,
				BadgeURL:    "https://img.shields.io/badge/Streak-30%20Days-gold?style=for-the-badge&logo=firebase&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o7TKMt1VVNkHV2PaE/giphy.gif",
			},
			{
				Name:        "Gains = Obtained",
				Description: "First PR! Let's get this bread! 🍞",
				Type:        "pr",
				Metric:      MetricPRTotal,
				Threshold:   1,
				Points:      50,
				BadgeURL:    "https://img.shields.io/badge/Achievement-PR%20Breaker-red?style=for-the-badge&logo=powershell&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o7TKDkDbIDJieKbVm/giphy.gif",
			},
			{
				Name:        "Absolute Unit",
				Description: "5 PRs in one month! Sheeeesh! 💪",
				Type:        "pr",
				Metric:      MetricPRMonth,
				Threshold:   5,
				Points:      200,
				BadgeURL:    "https://img.shields.io/badge/Achievement-PR%20Breaker-red?style=for-the-badge&logo=powershell&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o7TKDkDbIDJieKbVm/giphy.gif",
			},
			{
				Name:        "Gym Tok Famous",
				Description: "Completed 10 workouts! The algorithm loves you! 📱",
				Type:        "milestone",
				Metric:      MetricWorkoutsCompleted,
				Threshold:   10,
				Points:      150,
				BadgeURL:    "https://img.shields.io/badge/Achievement-First%20Workout-blue?style=for-the-badge&logo=adidas&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o7TKtsBMu4lwFXvJS/giphy.gif",
			},
			{
				Name:        "Built Different",
				Description: "50 workouts completed! No skips, just W's! 👑",
				Type:        "milestone",
				Metric:      MetricWorkoutsCompleted,
				Threshold:   50,
				Points:      750,
				BadgeURL:    "https://img.shields.io/badge/Achievement-First%20Workout-blue?style=for-the-badge&logo=adidas&logoColor=white",
				MemeURL:     "https://media.giphy.com/media/3o7TKtsBMu4lwFXvJS/giphy.gif",
			},
			{
				Name:        "Gym Buddy Found!",
				Description: "Made your first gym friend! Time for spotting and PR cheering! 🤝",
				Type:        "social",
				Metric:      MetricFriendsAccepted,
				Threshold:   1,
				Points:      100,
				BadgeURL:    "/static/badges/first_friend.png",
				MemeURL:     "/static/memes/first_friend.gif",
			},
			{
				Name:        "Transformation Loading...",
				Description: "7 weeks of progress tracked! Keep grinding! 📸",
				Type:        "progress",
				Metric:      MetricProgressPhotos,
				Threshold:   7,
				Points:      200,
				BadgeURL:    "/static/badges/progress_7.png",
				MemeURL:     "/static/memes/progress_7.gif",
			},
		},
		Titles: []TitleTier{
			{MinLevel: 1, Title: "Rookie Lifter"},
			{MinLevel: 5, Title: "Gym Rat Apprentice"},
			{MinLevel: 10, Title: "Certified Gains Enjoyer"},
			{MinLevel: 15, Title: "Fitness Girlboss/Maleboss"},
			{MinLevel: 20, Title: "Gym Influencer"},
			{MinLevel: 25, Title: "Swoledier"},
			{MinLevel: 30, Title: "Gains Legend"},
			{MinLevel: 40, Title: "Fitness CEO"},
			{MinLevel: 50, Title: "Gigachad/Gigastacy"},
		},
		DailyChallenges: []ChallengeTemplate{
			{
				Name:         "Push Day Energy",
				Description:  "Complete 100 push-ups today (any variation). Real ones only! 💪",
				TargetValue:  100,
				RewardPoints: 50,
			},
			{
				Name:         "Cardio? More like Car-YES-o",
				Description:  "20 minutes of any cardio. It's giving main character morning routine! 🏃‍♂️",
				TargetValue:  20,
				RewardPoints: 40,
			},
		},
		WeeklyChallenges: []ChallengeTemplate{
			{
				Name:         "Gains Week Challenge",
				Description:  "Hit 3 PRs this week. We go Jim! 🏋️‍♂️",
				TargetValue:  3,
				RewardPoints: 200,
			},
			{
				Name:         "Consistency Check",
				Description:  "Complete 5 workouts this week. No skips, just gains! 📈",
				TargetValue:  5,
				RewardPoints: 150,
			},
		},
	}
}
