package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitstack/workouts/internal/telemetry/metrics"
	"github.com/fitstack/workouts/internal/telemetry/tracing"
	"github.com/fitstack/workouts/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	List(ctx context.Context) ([]Workout, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Workout, error)
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateWorkoutRequest) (*Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Workout, error)
}

// WorkoutResponse is the success envelope for mutating operations.
type WorkoutResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Workout *Workout `json:"workout"`
}

type ErrorResponse struct {
	Error       string   `json:"error"`
	EmptyFields []string `json:"emptyFields,omitempty"`
}

const msgNoSuchWorkout = "No such workout found"

type Handler struct {
	repo     workoutsRepo
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	// /workouts/stats is registered before /workouts/{id} on purpose,
	// mux matches routes in registration order
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("workouts-stats")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleUpdate).Methods("PATCH", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		writeError(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, err := ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get workout %s: %s", id.Hex(), err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		writeError(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	workout, err := req.Normalize(time.Now())
	if err != nil {
		writeValidationError(w, err)
		return
	}

	addedWorkout, err := handler.repo.Add(ctx, *workout)
	if err != nil {
		// the validator ran first, so this is a persistence-layer failure
		log.Errorf("failed to add new workout [%s]: %s", workout.Title, err)
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handler.metrics.CounterWorkoutsCreated.Inc()
	log.Debugf("new workout added: [%s] %s", addedWorkout.Title, addedWorkout.ID.Hex())

	writeWorkoutResponse(w, "Workout created successfully!", addedWorkout, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PATCH, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	}

	var req UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update workout, unmarshal json params: %s", err)
		writeError(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	updatedWorkout, err := handler.repo.Update(ctx, id, &req)
	if errors.Is(err, ErrWorkoutNotFound) {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to update workout %s: %s", id.Hex(), err)
		writeError(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout updated: [%s] %s", updatedWorkout.Title, updatedWorkout.ID.Hex())
	writeWorkoutResponse(w, "Workout updated successfully!", updatedWorkout, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, err := ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	}

	deletedWorkout, err := handler.repo.Delete(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		writeError(w, msgNoSuchWorkout, http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete workout %s: %s", id.Hex(), err)
		writeError(w, "error, workout not deleted", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsDeleted.Inc()
	log.Debugf("workout deleted: [%s] %s", deletedWorkout.Title, deletedWorkout.ID.Hex())

	writeWorkoutResponse(w, "Workout deleted successfully!", deletedWorkout, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	stats, err := handler.analyzer.Stats(ctx)
	if err != nil {
		log.Errorf("failed to get workouts stats: %s", err)
		writeError(w, "failed to get workouts stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal workouts stats: %s", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	respJson, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		http.Error(w, message, statusCode)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	respJson, marshalErr := json.Marshal(ErrorResponse{
		Error:       validationErr.Message,
		EmptyFields: validationErr.EmptyFields,
	})
	if marshalErr != nil {
		http.Error(w, validationErr.Message, http.StatusBadRequest)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusBadRequest)
}

func writeWorkoutResponse(w http.ResponseWriter, message string, workout *Workout, statusCode int) {
	respJson, err := json.Marshal(WorkoutResponse{
		Success: true,
		Message: message,
		Workout: workout,
	})
	if err != nil {
		log.Errorf("failed to marshal workout response: %s", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
