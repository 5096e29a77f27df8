package seed

import (
	"fmt"
	"log"
	"os"

	"inkwell/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Plan describes how much data a seeding run creates. Zero values fall
// back to the defaults in DefaultPlan.
type Plan struct {
	Users           int     `yaml:"users"`
	Groups          int     `yaml:"groups"`
	Posts           int     `yaml:"posts"`
	CommentsPerPost int     `yaml:"comments_per_post"`
	FollowsPerUser  int     `yaml:"follows_per_user"`
	LikeRatio       float64 `yaml:"like_ratio"`
	Clean           bool    `yaml:"clean"`
}

// DefaultPlan is the plan used when no plan file is given.
var DefaultPlan = Plan{
	Users:           50,
	Groups:          8,
	Posts:           200,
	CommentsPerPost: 3,
	FollowsPerUser:  5,
	LikeRatio:       0.15,
	Clean:           true,
}

// LoadPlan reads a YAML plan file. Missing keys keep their defaults.
func LoadPlan(path string) (Plan, error) {
	plan := DefaultPlan
	data, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("read plan file: %w", err)
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return plan, fmt.Errorf("parse plan file: %w", err)
	}
	return plan, nil
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all seeded domain data. Dependent tables go first so
// foreign keys never block the wipe.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run executes the plan: users, groups, posts, then the engagement mesh
// of comments, follows, and likes.
func (s *Seeder) Run(plan Plan) error {
	log.Printf("Seeding %d users, %d groups, %d posts...", plan.Users, plan.Groups, plan.Posts)

	if plan.Clean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clean before seeding: %w", err)
		}
	}

	users, err := s.seedUsers(plan.Users)
	if err != nil {
		return err
	}
	groups, err := s.seedGroups(users, plan.Groups)
	if err != nil {
		return err
	}
	posts, err := s.seedPosts(users, groups, plan.Posts)
	if err != nil {
		return err
	}
	if err := s.seedEngagement(users, posts, plan); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d groups, %d posts.", len(users), len(groups), len(posts))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGroups(users []*models.User, n int) ([]*models.Group, error) {
	if len(users) == 0 {
		return nil, nil
	}
	groups := make([]*models.Group, 0, n)
	for i := 0; i < n; i++ {
		creator := users[s.factory.rand.Intn(len(users))]
		group, err := s.factory.CreateGroup(creator)
		if err != nil {
			return nil, fmt.Errorf("create group %d: %w", i, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) seedPosts(users []*models.User, groups []*models.Group, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		// roughly a third of all posts stay ungrouped
		var group *models.Group
		if len(groups) > 0 && s.factory.rand.Intn(3) != 0 {
			group = groups[s.factory.rand.Intn(len(groups))]
		}
		posts = append(posts, s.factory.BuildPost(author, group))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	return posts, nil
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post, plan Plan) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	for _, post := range posts {
		for i := 0; i < plan.CommentsPerPost; i++ {
			// not every post gets the full allotment
			if s.factory.rand.Intn(2) == 0 {
				continue
			}
			author := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
	}

	for _, user := range users {
		for i := 0; i < plan.FollowsPerUser; i++ {
			author := users[s.factory.rand.Intn(len(users))]
			if err := s.factory.CreateFollow(user, author); err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}

	likes := int(float64(len(users)*len(posts)) * plan.LikeRatio)
	for i := 0; i < likes; i++ {
		user := users[s.factory.rand.Intn(len(users))]
		post := posts[s.factory.rand.Intn(len(posts))]
		if err := s.factory.CreateLike(user, post); err != nil {
			return fmt.Errorf("create like: %w", err)
		}
	}
	return nil
}
