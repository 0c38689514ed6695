package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tcstacks/minixword/internal/auth"
	"github.com/tcstacks/minixword/internal/db"
	"github.com/tcstacks/minixword/internal/models"
	"github.com/tcstacks/minixword/internal/puzzle"
	"github.com/tcstacks/minixword/internal/realtime"
	"github.com/tcstacks/minixword/internal/solver"
	"github.com/tcstacks/minixword/pkg/clues"
	"github.com/tcstacks/minixword/pkg/clues/providers"
	"github.com/tcstacks/minixword/pkg/wordlist"
)

// Handlers wires the generation pipeline (internal/puzzle), the
// puzzle archive (internal/db), and the progress hub (internal/realtime)
// into gin endpoints. Narrowed from the teacher's auth/user/room
// handler set, which had no generation pipeline to front: this domain
// has one operator role and one pipeline, not accounts and rooms.
type Handlers struct {
	db          *db.Database
	authService *auth.AuthService
	hub         *realtime.Hub

	adminKeyHash string
	wlProvider   *wordlist.Provider
	clueCache    *clues.ClueCache
	llmClient    providers.LLMClient
}

// Deps bundles the collaborators NewHandlers needs beyond the
// database and auth service, so the constructor signature doesn't
// grow every time the pipeline gains a new stage.
type Deps struct {
	AdminKeyHash string
	Wordlist     *wordlist.Provider
	ClueCache    *clues.ClueCache
	LLMClient    providers.LLMClient // nil selects cache-only clue generation
}

func NewHandlers(database *db.Database, authService *auth.AuthService, hub *realtime.Hub, deps Deps) *Handlers {
	return &Handlers{
		db:           database,
		authService:  authService,
		hub:          hub,
		adminKeyHash: deps.AdminKeyHash,
		wlProvider:   deps.Wordlist,
		clueCache:    deps.ClueCache,
		llmClient:    deps.LLMClient,
	}
}

// Admin auth

type LoginRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.authService.CheckAPIKey(req.APIKey, h.adminKeyHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Generation

type GenerateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	Seed       uint64 `json:"seed"`
	Theme      string `json:"theme"`
	Publish    bool   `json:"publish"`
}

type GenerateResponse struct {
	RunID string `json:"runId"`
}

// Generate kicks off one escalated generation run in the background
// and returns immediately with a run id; the caller watches progress
// over the websocket at /admin/generate/:runId/progress and later
// fetches the result from the archive once the run's puzzleId lands.
func (h *Handlers) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := solver.TemplateByID(req.TemplateID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown template id"})
		return
	}

	runID := uuid.New().String()
	go h.runGeneration(runID, req)

	c.JSON(http.StatusAccepted, GenerateResponse{RunID: runID})
}

// runGeneration drives one generator.GeneratePuzzle call, publishing a
// started and a finished snapshot to the progress hub and persisting
// both the puzzle (on success) and the generation_runs row either way.
func (h *Handlers) runGeneration(runID string, req GenerateRequest) {
	start := time.Now()
	h.hub.Publish(runID, realtime.ProgressSnapshot{Tier: solver.TierStrict})

	clueGen := clues.NewGenerator(h.clueCache, h.llmClient, clues.WeekdayDifficulty(req.TemplateID))
	gen := puzzle.NewGenerator(h.wlProvider, clueGen)

	res, err := gen.GeneratePuzzle(context.Background(), puzzle.Config{
		TemplateID: req.TemplateID,
		Seed:       req.Seed,
		Theme:      req.Theme,
	})

	run := &models.GenerationRun{
		ID:         runID,
		TemplateID: req.TemplateID,
		Seed:       int64(req.Seed),
		DurationMS: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now(),
	}

	if err != nil {
		run.Tier = -1
		run.Succeeded = false
		run.FailureReason = err.Error()
		if cerr := h.db.CreateGenerationRun(run); cerr != nil {
			log.Printf("runGeneration: failed to record run %s: %v", runID, cerr)
		}
		h.hub.Publish(runID, realtime.ProgressSnapshot{
			Done:      true,
			Succeeded: false,
			Error:     err.Error(),
			ElapsedMS: run.DurationMS,
		})
		return
	}

	p := res.Puzzle
	if req.Publish {
		now := time.Now()
		p.PublishedAt = &now
	}
	if cerr := h.db.CreatePuzzle(p); cerr != nil {
		log.Printf("runGeneration: failed to persist puzzle for run %s: %v", runID, cerr)
	}

	run.PuzzleID = &p.ID
	run.Tier = res.Document.Meta.WordTier
	run.Succeeded = true
	if cerr := h.db.CreateGenerationRun(run); cerr != nil {
		log.Printf("runGeneration: failed to record run %s: %v", runID, cerr)
	}

	h.hub.Publish(runID, realtime.ProgressSnapshot{
		Tier:      run.Tier,
		Done:      true,
		Succeeded: true,
		ElapsedMS: run.DurationMS,
	})
}

// GetGenerationRuns reports recent escalation attempts, optionally
// filtered by template, for an operator tracking success rate and
// search cost across templates.
func (h *Handlers) GetGenerationRuns(c *gin.Context) {
	templateID := c.Query("template")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.db.GetRecentGenerationRuns(templateID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, runs)
}

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeGenerationProgress upgrades the request to a websocket and
// subscribes the connection to one run's progress stream until the
// client disconnects.
func (h *Handlers) ServeGenerationProgress(c *gin.Context) {
	runID := c.Param("runId")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing run id"})
		return
	}

	conn, err := progressUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ServeGenerationProgress: upgrade failed: %v", err)
		return
	}

	client := &realtime.Client{RunID: runID, Conn: conn, Send: make(chan []byte, 16)}
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump(h.hub)
}

// Puzzle archive

func (h *Handlers) GetTodayPuzzle(c *gin.Context) {
	p, err := h.db.GetTodayPuzzle()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no puzzle available for today"})
		return
	}

	c.JSON(http.StatusOK, sanitizePuzzleForClient(p))
}

func (h *Handlers) GetPuzzleByDate(c *gin.Context) {
	date := c.Param("date")

	p, err := h.db.GetPuzzleByDate(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}

	c.JSON(http.StatusOK, sanitizePuzzleForClient(p))
}

func (h *Handlers) GetPuzzleByID(c *gin.Context) {
	id := c.Param("id")

	p, err := h.db.GetPuzzleByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}

	c.JSON(http.StatusOK, sanitizePuzzleForClient(p))
}

type PuzzleArchiveResponse struct {
	Puzzles []*models.Puzzle `json:"puzzles"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func (h *Handlers) GetPuzzleArchive(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	difficulty := c.Query("difficulty")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	total, err := h.db.GetPuzzleArchiveCount(difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	puzzles, err := h.db.GetPuzzleArchive(difficulty, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	sanitized := make([]*models.Puzzle, len(puzzles))
	for i, p := range puzzles {
		sanitized[i] = sanitizePuzzleForClient(p)
	}

	c.JSON(http.StatusOK, PuzzleArchiveResponse{
		Puzzles: sanitized,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

func (h *Handlers) DeletePuzzle(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.DeletePuzzle(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete puzzle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "puzzle deleted"})
}

// sanitizePuzzleForClient strips answers from clues before a puzzle
// leaves the process, mirroring the teacher's solver-spoiler guard.
func sanitizePuzzleForClient(p *models.Puzzle) *models.Puzzle {
	sanitized := *p
	sanitized.CluesAcross = make([]models.Clue, len(p.CluesAcross))
	sanitized.CluesDown = make([]models.Clue, len(p.CluesDown))

	for i, clue := range p.CluesAcross {
		clue.Answer = ""
		sanitized.CluesAcross[i] = clue
	}
	for i, clue := range p.CluesDown {
		clue.Answer = ""
		sanitized.CluesDown[i] = clue
	}

	return &sanitized
}
