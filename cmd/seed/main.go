package main

import (
	"errors"
	"log"
	"time"

	"github.com/openbounty/bounty-board-api/internal/config"
	"github.com/openbounty/bounty-board-api/internal/database"
	"github.com/openbounty/bounty-board-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the database with a demo user, sample bounties and submissions.
// Safe to re-run: seeding is skipped when the demo user already exists.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	var existing models.User
	err := db.Where("email = ?", "demo@example.com").First(&existing).Error
	if err == nil {
		log.Println("Demo user already exists, skipping seed")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check demo user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	wallet := "0x1234567890123456789012345678901234567890"
	avatar := "https://api.dicebear.com/7.x/avataaars/svg?seed=demo_user"
	user := models.User{
		Email:         "demo@example.com",
		Username:      "demo_user",
		PasswordHash:  string(hash),
		Avatar:        &avatar,
		WalletAddress: &wallet,
		Earnings:      19.0,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	in := func(d time.Duration) *time.Time {
		t := time.Now().Add(d)
		return &t
	}

	bounties := []models.Bounty{
		{
			Title:          "Aptos Finance - UI Design Review",
			Description:    "Review and provide feedback on the new Aptos Finance UI design. Focus on user experience and accessibility.",
			Reward:         100,
			RewardCurrency: "APT",
			Category:       models.CategoryDesign,
			Project:        "APTOS FINANCE",
			Status:         models.BountyStatusOpen,
			DueDate:        in(2 * 24 * time.Hour),
			Progress:       65,
			Tags:           []string{"Design", "UI/UX"},
			CreatorID:      user.ID,
		},
		{
			Title:          "Create a video about Petra Wallet",
			Description:    "Create an engaging video showcasing Petra Wallet features and benefits for the Aptos ecosystem.",
			Reward:         200,
			RewardCurrency: "APT",
			Category:       models.CategoryVideo,
			Project:        "PETRA WALLET",
			Status:         models.BountyStatusOpen,
			DueDate:        in(3 * 24 * time.Hour),
			Progress:       40,
			Tags:           []string{"Video", "Marketing"},
			CreatorID:      user.ID,
		},
		{
			Title:          "Write a thread about Hyperion on X",
			Description:    "Create an informative Twitter thread about Hyperion protocol and its benefits for the Aptos ecosystem.",
			Reward:         20,
			RewardCurrency: "APT",
			Category:       models.CategoryContent,
			Project:        "HYPERION",
			Status:         models.BountyStatusOpen,
			DueDate:        in(12 * time.Hour),
			Progress:       85,
			Tags:           []string{"Content", "Social"},
			CreatorID:      user.ID,
		},
		{
			Title:          "PACT gives Memecoin Traders superpowers",
			Description:    "Develop smart contracts and tools for PACT protocol to enhance memecoin trading capabilities.",
			Reward:         1,
			RewardCurrency: "APT",
			Category:       models.CategoryDevelopment,
			Project:        "PACT",
			Status:         models.BountyStatusOpen,
			DueDate:        in(5 * 24 * time.Hour),
			Progress:       25,
			Tags:           []string{"Development", "DeFi"},
			CreatorID:      user.ID,
		},
		{
			Title:          "Threadstorming Thala: Tweet Like a Pro",
			Description:    "Create viral Twitter content about Thala protocol and its innovative DeFi solutions.",
			Reward:         250,
			RewardCurrency: "APT",
			Category:       models.CategorySocial,
			Project:        "THALA",
			Status:         models.BountyStatusOpen,
			DueDate:        in(7 * 24 * time.Hour),
			Progress:       15,
			Tags:           []string{"Social", "Community"},
			CreatorID:      user.ID,
		},
		{
			Title:          "Write a thread about Aptos Learn on X",
			Description:    "Create educational content about Aptos Learn platform and its resources for developers.",
			Reward:         15,
			RewardCurrency: "APT",
			Category:       models.CategoryEducational,
			Project:        "APTOS LEARN",
			Status:         models.BountyStatusOpen,
			DueDate:        in(4 * 24 * time.Hour),
			Progress:       70,
			Tags:           []string{"Educational", "Content"},
			CreatorID:      user.ID,
		},
	}

	for i := range bounties {
		if err := db.Create(&bounties[i]).Error; err != nil {
			log.Fatalf("Failed to create bounty %q: %v", bounties[i].Title, err)
		}
	}

	submissions := []models.Submission{
		{
			Content:  "I have completed the UI design review for Aptos Finance. Here are my findings and recommendations...",
			Status:   models.SubmissionStatusApproved,
			BountyID: bounties[0].ID,
			UserID:   user.ID,
		},
		{
			Content:  "Working on the Petra Wallet video. Here is my progress update...",
			Status:   models.SubmissionStatusPending,
			BountyID: bounties[1].ID,
			UserID:   user.ID,
		},
		{
			Content:  "Smart contract development for PACT protocol is in progress...",
			Status:   models.SubmissionStatusPending,
			BountyID: bounties[3].ID,
			UserID:   user.ID,
		},
	}

	for i := range submissions {
		if err := db.Create(&submissions[i]).Error; err != nil {
			log.Fatalf("Failed to create submission: %v", err)
		}
	}

	log.Println("Database seeded successfully")
}
