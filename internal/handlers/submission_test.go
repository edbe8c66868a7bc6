package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/openbounty/bounty-board-api/internal/dto"
	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"github.com/openbounty/bounty-board-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SubmissionHandlerTestSuite defines the test suite for SubmissionHandler
type SubmissionHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SubmissionHandler
}

// SetupTest runs before each test
func (suite *SubmissionHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Bounty{},
		&models.Submission{},
	)
	suite.Require().NoError(err)

	bountyRepo := repository.NewBountyRepository(suite.db)
	submissionRepo := repository.NewSubmissionRepository(suite.db)
	submissionService := services.NewSubmissionService(submissionRepo, bountyRepo)

	suite.handler = NewSubmissionHandler(submissionService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *SubmissionHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubmissionHandlerTestSuite) createTestUser(email, username string) *models.User {
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *SubmissionHandlerTestSuite) createTestBounty(title string, reward float64, creatorID uint64) *models.Bounty {
	bounty := &models.Bounty{
		Title:          title,
		Description:    "Test Description",
		Reward:         reward,
		RewardCurrency: "APT",
		Category:       models.CategoryDesign,
		Status:         models.BountyStatusOpen,
		CreatorID:      creatorID,
	}
	suite.db.Create(bounty)
	return bounty
}

func (suite *SubmissionHandlerTestSuite) createTestSubmission(bountyID, userID uint64, content string) *models.Submission {
	submission := &models.Submission{
		Content:  content,
		Status:   models.SubmissionStatusPending,
		BountyID: bountyID,
		UserID:   userID,
	}
	suite.db.Create(submission)
	return submission
}

func (suite *SubmissionHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestCreateSubmission_Success tests submitting work to a bounty
func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_Success() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)

	body, _ := json.Marshal(map[string]any{
		"bounty_id": bounty.ID,
		"content":   "Here is my work",
	})

	c, w := suite.createAuthContext("POST", "/api/submissions", body, submitter.ID)
	suite.handler.CreateSubmission(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.SubmissionStatusPending, response.Status)
	suite.Require().NotNil(response.Bounty)
	assert.Equal(suite.T(), bounty.Title, response.Bounty.Title)
	suite.Require().NotNil(response.User)
	assert.Equal(suite.T(), "worker", response.User.Username)
}

// TestCreateSubmission_UnknownBounty tests submitting to a missing bounty
func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_UnknownBounty() {
	submitter := suite.createTestUser("worker@example.com", "worker")

	body, _ := json.Marshal(map[string]any{
		"bounty_id": 999,
		"content":   "Here is my work",
	})

	c, w := suite.createAuthContext("POST", "/api/submissions", body, submitter.ID)
	suite.handler.CreateSubmission(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateSubmission_RepeatAllowed tests the same user submitting twice
// to the same bounty
func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_RepeatAllowed() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)

	for i := 0; i < 2; i++ {
		body, _ := json.Marshal(map[string]any{
			"bounty_id": bounty.ID,
			"content":   "Attempt",
		})
		c, w := suite.createAuthContext("POST", "/api/submissions", body, submitter.ID)
		suite.handler.CreateSubmission(c)
		assert.Equal(suite.T(), http.StatusCreated, w.Code)
	}

	var count int64
	suite.db.Model(&models.Submission{}).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestListSubmissions_ByBounty tests the bountyId filter and ordering
func (suite *SubmissionHandlerTestSuite) TestListSubmissions_ByBounty() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	otherBounty := suite.createTestBounty("Other", 50, creator.ID)

	first := suite.createTestSubmission(bounty.ID, submitter.ID, "first")
	second := suite.createTestSubmission(bounty.ID, submitter.ID, "second")
	suite.createTestSubmission(otherBounty.ID, submitter.ID, "elsewhere")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/submissions", nil)
	c.Request.URL.RawQuery = "bountyId=1"

	suite.handler.ListSubmissions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 2)

	// Newest first
	assert.Equal(suite.T(), second.ID, response[0].ID)
	assert.Equal(suite.T(), first.ID, response[1].ID)
	for _, s := range response {
		assert.Equal(suite.T(), bounty.ID, s.BountyID)
	}
}

// TestListSubmissions_StatusFilter tests the status filter with sentinel
func (suite *SubmissionHandlerTestSuite) TestListSubmissions_StatusFilter() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)

	suite.createTestSubmission(bounty.ID, submitter.ID, "pending one")
	approved := suite.createTestSubmission(bounty.ID, submitter.ID, "approved one")
	suite.db.Model(approved).Update("status", models.SubmissionStatusApproved)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/submissions", nil)
	c.Request.URL.RawQuery = "status=APPROVED"

	suite.handler.ListSubmissions(c)

	var response []dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), approved.ID, response[0].ID)

	// Sentinel returns everything
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/submissions", nil)
	c.Request.URL.RawQuery = "status=all"

	suite.handler.ListSubmissions(c)

	response = nil
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response, 2)

	// Unknown status is rejected, not an empty match
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/submissions", nil)
	c.Request.URL.RawQuery = "status=DONE"

	suite.handler.ListSubmissions(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListSubmissions_BadBountyID tests a non-numeric bountyId filter
func (suite *SubmissionHandlerTestSuite) TestListSubmissions_BadBountyID() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/submissions", nil)
	c.Request.URL.RawQuery = "bountyId=abc"

	suite.handler.ListSubmissions(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestReviewSubmission_Approve tests approval crediting the submitter
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_Approve() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	submission := suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	body, _ := json.Marshal(map[string]any{"status": "APPROVED"})

	c, w := suite.createAuthContext("POST", "/api/submissions/1/review", body, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), submission.ID, response.ID)
	assert.Equal(suite.T(), models.SubmissionStatusApproved, response.Status)

	var updated models.User
	suite.db.First(&updated, submitter.ID)
	assert.Equal(suite.T(), 100.0, updated.Earnings)
}

// TestReviewSubmission_Reject tests rejection leaving earnings untouched
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_Reject() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	body, _ := json.Marshal(map[string]any{"status": "REJECTED"})

	c, w := suite.createAuthContext("POST", "/api/submissions/1/review", body, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.User
	suite.db.First(&updated, submitter.ID)
	assert.Equal(suite.T(), 0.0, updated.Earnings)
}

// TestReviewSubmission_NotCreator tests only the bounty creator may review
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_NotCreator() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	body, _ := json.Marshal(map[string]any{"status": "APPROVED"})

	c, w := suite.createAuthContext("POST", "/api/submissions/1/review", body, submitter.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestReviewSubmission_AlreadyReviewed tests double review is rejected and
// earnings are credited exactly once
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_AlreadyReviewed() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	body, _ := json.Marshal(map[string]any{"status": "APPROVED"})

	c, w := suite.createAuthContext("POST", "/api/submissions/1/review", body, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext("POST", "/api/submissions/1/review", body, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var updated models.User
	suite.db.First(&updated, submitter.ID)
	assert.Equal(suite.T(), 100.0, updated.Earnings)
}

// TestReviewSubmission_RacingReviewersCreditOnce tests the interleaving
// where two reviewers both read the submission while it is still PENDING:
// only one status flip may land and earnings are credited exactly once
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_RacingReviewersCreditOnce() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	submission := suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	repo := repository.NewSubmissionRepository(suite.db)

	// Both requests load the submission before either writes
	first, err := repo.FindByID(submission.ID)
	suite.Require().NoError(err)
	second, err := repo.FindByID(submission.ID)
	suite.Require().NoError(err)
	suite.Require().Equal(models.SubmissionStatusPending, first.Status)
	suite.Require().Equal(models.SubmissionStatusPending, second.Status)

	suite.Require().NoError(repo.Review(first, models.SubmissionStatusApproved, bounty.Reward))

	err = repo.Review(second, models.SubmissionStatusApproved, bounty.Reward)
	assert.ErrorIs(suite.T(), err, repository.ErrSubmissionNotPending)

	var updated models.User
	suite.db.First(&updated, submitter.ID)
	assert.Equal(suite.T(), 100.0, updated.Earnings)
}

// TestReviewSubmission_InvalidStatus tests rejecting unknown review verdicts
func (suite *SubmissionHandlerTestSuite) TestReviewSubmission_InvalidStatus() {
	creator := suite.createTestUser("creator@example.com", "creator")
	submitter := suite.createTestUser("worker@example.com", "worker")
	bounty := suite.createTestBounty("Bounty", 100, creator.ID)
	suite.createTestSubmission(bounty.ID, submitter.ID, "work")

	body, _ := json.Marshal(map[string]any{"status": "PENDING"})

	c, w := suite.createAuthContext("POST", "/api/submissions/1/review", body, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.ReviewSubmission(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmissionHandlerTestSuite runs the test suite
func TestSubmissionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionHandlerTestSuite))
}
