// ABOUTME: MCP tool implementations for the fittrack tracker.
// ABOUTME: Exposes workout/plan/counter/meal operations and the activity feed.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a workout session with exercises and sets",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workout sessions with their exercises and sets",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_plan",
		Description: "Create or update a workout plan (ordered exercise list)",
	}, s.handleSavePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plans",
		Description: "List workout plans with their exercises",
	}, s.handleListPlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "adjust_steps",
		Description: "Add or subtract steps for a day (never drops below zero)",
	}, s.handleAdjustSteps)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "adjust_water",
		Description: "Add or subtract water intake in ml for a day (never drops below zero)",
	}, s.handleAdjustWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record a bodyweight entry",
	}, s.handleLogWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Record a meal with calories and macros",
	}, s.handleLogMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_activity",
		Description: "Unified feed of workouts, weigh-ins, and meals, newest first",
	}, s.handleRecentActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "today_summary",
		Description: "Today's nutrition and activity totals against goals",
	}, s.handleTodaySummary)
}

// Tool input/output types

type setInput struct {
	Reps   *int     `json:"reps,omitempty" jsonschema:"Repetitions performed"`
	Weight *float64 `json:"weight,omitempty" jsonschema:"Weight used"`
	Unit   string   `json:"unit,omitempty" jsonschema:"Weight unit (kg or lb)"`
}

type exerciseInput struct {
	ExerciseID string     `json:"exercise_id" jsonschema:"Catalog exercise UUID"`
	Sets       []setInput `json:"sets" jsonschema:"Ordered sets for this exercise"`
}

type logWorkoutInput struct {
	Date            string          `json:"date,omitempty" jsonschema:"Session date (YYYY-MM-DD), defaults to today"`
	Name            string          `json:"name,omitempty" jsonschema:"Session name"`
	Notes           string          `json:"notes,omitempty" jsonschema:"Session notes"`
	DurationSeconds int             `json:"duration_seconds,omitempty" jsonschema:"Duration in seconds"`
	Exercises       []exerciseInput `json:"exercises,omitempty" jsonschema:"Exercises in performed order"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Sets    int    `json:"sets"`
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	From string `json:"from,omitempty" jsonschema:"Inclusive start date (YYYY-MM-DD)"`
	To   string `json:"to,omitempty" jsonschema:"Inclusive end date (YYYY-MM-DD)"`
}

type planExerciseInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Catalog exercise UUID"`
	TargetSets *int   `json:"target_sets,omitempty" jsonschema:"Target set count"`
}

type savePlanInput struct {
	PlanID      string              `json:"plan_id,omitempty" jsonschema:"Existing plan UUID to update; omit to create"`
	Name        string              `json:"name" jsonschema:"Plan name"`
	Description string              `json:"description,omitempty" jsonschema:"Plan description"`
	Exercises   []planExerciseInput `json:"exercises" jsonschema:"Ordered exercise list (at least one)"`
}

type planOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type adjustInput struct {
	Delta int    `json:"delta" jsonschema:"Signed amount to add"`
	Date  string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type counterOutput struct {
	Amount  int    `json:"amount"`
	Message string `json:"message"`
}

type logWeightInput struct {
	Weight float64 `json:"weight" jsonschema:"Bodyweight value"`
	Unit   string  `json:"unit,omitempty" jsonschema:"Unit (kg or lb), defaults to kg"`
	Date   string  `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type logMealInput struct {
	Name     string  `json:"name" jsonschema:"Meal name"`
	Calories float64 `json:"calories,omitempty" jsonschema:"Calories (kcal)"`
	Protein  float64 `json:"protein,omitempty" jsonschema:"Protein (g)"`
	Carbs    float64 `json:"carbs,omitempty" jsonschema:"Carbs (g)"`
	Fat      float64 `json:"fat,omitempty" jsonschema:"Fat (g)"`
	Date     string  `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type recentActivityInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	svcReq := &service.LogSessionRequest{
		Date:            day,
		Name:            input.Name,
		Notes:           input.Notes,
		DurationSeconds: input.DurationSeconds,
	}
	for _, ex := range input.Exercises {
		exReq := service.SessionExerciseRequest{ExerciseID: ex.ExerciseID}
		for _, set := range ex.Sets {
			exReq.Sets = append(exReq.Sets, service.SetRequest{
				Reps:   set.Reps,
				Weight: set.Weight,
				Unit:   set.Unit,
			})
		}
		svcReq.Exercises = append(svcReq.Exercises, exReq)
	}

	session, err := s.tracker.LogSession(ctx, s.userID, svcReq)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      session.ID.String(),
		Sets:    session.TotalSets(),
		Message: fmt.Sprintf("Logged workout with %d sets (ID: %s)", session.TotalSets(), session.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	var from, to *time.Time
	if input.From != "" {
		t, err := time.Parse("2006-01-02", input.From)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date: %s", input.From)
		}
		from = &t
	}
	if input.To != "" {
		t, err := time.Parse("2006-01-02", input.To)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date: %s", input.To)
		}
		to = &t
	}

	sessions, err := s.tracker.Sessions(ctx, s.userID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleSavePlan(ctx context.Context, req *mcp.CallToolRequest, input savePlanInput) (*mcp.CallToolResult, planOutput, error) {
	svcReq := &service.SavePlanRequest{
		Name:        input.Name,
		Description: input.Description,
	}
	for _, ex := range input.Exercises {
		svcReq.Exercises = append(svcReq.Exercises, service.PlanExerciseRequest{
			ExerciseID: ex.ExerciseID,
			TargetSets: ex.TargetSets,
		})
	}

	if input.PlanID != "" {
		planID, err := uuid.Parse(input.PlanID)
		if err != nil {
			return nil, planOutput{}, fmt.Errorf("invalid plan id: %s", input.PlanID)
		}
		plan, err := s.tracker.UpdatePlan(ctx, s.userID, planID, svcReq)
		if err != nil {
			return nil, planOutput{}, fmt.Errorf("failed to update plan: %w", err)
		}
		return nil, planOutput{
			ID:      plan.ID.String(),
			Message: fmt.Sprintf("Updated plan %q (%d exercises)", plan.Name, len(plan.Exercises)),
		}, nil
	}

	plan, err := s.tracker.CreatePlan(ctx, s.userID, svcReq)
	if err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to create plan: %w", err)
	}
	return nil, planOutput{
		ID:      plan.ID.String(),
		Message: fmt.Sprintf("Created plan %q (ID: %s)", plan.Name, plan.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	plans, err := s.tracker.Plans(ctx, s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		return nil, map[string]any{"message": "No plans found."}, nil
	}
	return nil, plans, nil
}

func (s *Server) handleAdjustSteps(ctx context.Context, req *mcp.CallToolRequest, input adjustInput) (*mcp.CallToolResult, counterOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, counterOutput{}, err
	}
	cl, err := s.tracker.AdjustSteps(ctx, s.userID, day, input.Delta)
	if err != nil {
		return nil, counterOutput{}, fmt.Errorf("failed to adjust steps: %w", err)
	}
	return nil, counterOutput{
		Amount:  cl.Amount,
		Message: fmt.Sprintf("Steps for %s: %d", day.Format("2006-01-02"), cl.Amount),
	}, nil
}

func (s *Server) handleAdjustWater(ctx context.Context, req *mcp.CallToolRequest, input adjustInput) (*mcp.CallToolResult, counterOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, counterOutput{}, err
	}
	cl, err := s.tracker.AdjustWater(ctx, s.userID, day, input.Delta)
	if err != nil {
		return nil, counterOutput{}, fmt.Errorf("failed to adjust water: %w", err)
	}
	return nil, counterOutput{
		Amount:  cl.Amount,
		Message: fmt.Sprintf("Water for %s: %d ml", day.Format("2006-01-02"), cl.Amount),
	}, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	w, err := s.tracker.LogWeight(ctx, s.userID, day, input.Weight, input.Unit)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log weight: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %.1f %s", w.Weight, w.Unit),
	}, nil
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	m, err := s.tracker.LogMeal(ctx, s.userID, &service.MealRequest{
		Date:     day,
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
	})
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log meal: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %s (%.0f kcal)", m.Name, m.Calories),
	}, nil
}

func (s *Server) handleRecentActivity(ctx context.Context, req *mcp.CallToolRequest, input recentActivityInput) (*mcp.CallToolResult, any, error) {
	items, err := s.tracker.RecentActivity(ctx, s.userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	if len(items) == 0 {
		return nil, map[string]any{"message": "No activity found."}, nil
	}
	return nil, items, nil
}

func (s *Server) handleTodaySummary(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	summary, err := s.tracker.TodaySummary(ctx, s.userID, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return nil, summary, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
