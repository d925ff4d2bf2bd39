package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/2akonsultant/GoodnessGlamour/internal/ai"
	"github.com/2akonsultant/GoodnessGlamour/internal/catalog"
	"github.com/2akonsultant/GoodnessGlamour/internal/metrics"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
	"github.com/2akonsultant/GoodnessGlamour/internal/session"
	"github.com/2akonsultant/GoodnessGlamour/internal/utils"
)

// Completer receives confirmed bookings. Submit must not block the caller.
type Completer interface {
	Submit(b models.FinalizedBooking)
}

type discardCompleter struct{}

func (discardCompleter) Submit(models.FinalizedBooking) {}

// maxResponderHistory bounds how much of the conversation is sent to a remote model.
const maxResponderHistory = 10

// Engine drives every booking conversation. It is safe for concurrent use; turns for
// the same session are serialized.
type Engine struct {
	store       session.Store
	catalog     *catalog.Catalog
	completer   Completer
	responder   ai.Responder
	aiTimeout   time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
	locks       *utils.KeyedMutex
	transitions map[models.Step]transition
}

// turn is the per-call view a transition works on.
type turn struct {
	ctx       context.Context
	session   *models.Session
	utterance string
	now       time.Time
	history   []models.HistoryEntry
}

// transition handles one utterance in a step. A non-nil booking means the
// conversation just reached booking_complete.
type transition func(e *Engine, t *turn) (reply string, booking *models.FinalizedBooking)

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithResponder sets the generator used for greeting-step replies that do not
// start a booking. Each call is bounded by timeout.
func WithResponder(r ai.Responder, timeout time.Duration) Option {
	return func(e *Engine) {
		e.responder = r
		e.aiTimeout = timeout
	}
}

func WithCompleter(c Completer) Option {
	return func(e *Engine) { e.completer = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(store session.Store, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		catalog:   cat,
		completer: discardCompleter{},
		responder: ai.RuleResponder{},
		aiTimeout: 3 * time.Second,
		logger:    zerolog.Nop(),
		now:       time.Now,
		locks:     utils.NewKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.transitions = map[models.Step]transition{
		models.StepGreeting:        (*Engine).greeting,
		models.StepGetName:         (*Engine).getName,
		models.StepGetService:      (*Engine).getService,
		models.StepGetDate:         (*Engine).getDate,
		models.StepGetTime:         (*Engine).getTime,
		models.StepGetAddress:      (*Engine).getAddress,
		models.StepConfirmBooking:  (*Engine).confirmBooking,
		models.StepBookingComplete: (*Engine).bookingComplete,
	}
	return e
}

// StartSession creates a session in the greeting step. Starting an existing
// session returns it unchanged.
func (e *Engine) StartSession(ctx context.Context, sessionID, phone string, channel models.Channel) (models.Session, error) {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	now := e.now()
	s, created, err := e.store.Create(ctx, models.Session{
		ID:        sessionID,
		Phone:     phone,
		Channel:   channel,
		Step:      models.StepGreeting,
		Booking:   models.BookingDraft{Phone: phone},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return models.Session{}, err
	}
	if created {
		e.metrics.SessionStarted(string(channel))
		e.logger.Info().Str("session_id", sessionID).Str("channel", string(channel)).Msg("session started")
	}
	return s, nil
}

// TurnResult is the outcome of one turn. Step is the session's step after the
// turn and is empty when the session could not be loaded or saved.
type TurnResult struct {
	Reply     string
	Step      models.Step
	BookingID string
	// Ended reports that the completed session was removed in the same turn.
	Ended bool
}

// Advance feeds one customer utterance to the session and returns the reply to
// speak or send. It never fails: problems are logged and answered with a fixed
// apology.
func (e *Engine) Advance(ctx context.Context, utterance, sessionID string) string {
	return e.Turn(ctx, utterance, sessionID).Reply
}

// Turn is Advance that also reports where the session ended up.
func (e *Engine) Turn(ctx context.Context, utterance, sessionID string) TurnResult {
	unlock := e.locks.Lock(sessionID)
	defer unlock()
	return e.advance(ctx, utterance, sessionID)
}

// TurnAndEnd runs a turn and, when it completes the booking, removes the session
// before any other turn for it can run. Gateways that hang up or start over after
// a booking use it.
func (e *Engine) TurnAndEnd(ctx context.Context, utterance, sessionID string) TurnResult {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	res := e.advance(ctx, utterance, sessionID)
	if res.Step != models.StepBookingComplete {
		return res
	}
	if err := e.store.Delete(ctx, sessionID); err != nil {
		e.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to end completed session")
		return res
	}
	res.Ended = true
	return res
}

func (e *Engine) advance(ctx context.Context, utterance, sessionID string) TurnResult {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			e.logger.Error().Err(err).Str("session_id", sessionID).Msg("session load failed")
		}
		return TurnResult{Reply: MsgSessionLost}
	}
	handler, ok := e.transitions[s.Step]
	if !ok {
		e.logger.Error().Str("session_id", sessionID).Str("step", string(s.Step)).Msg("session in unknown step")
		return TurnResult{Reply: MsgSessionLost}
	}

	now := e.now()
	e.metrics.Turn(string(s.Step))
	t := &turn{ctx: ctx, session: &s, utterance: utterance, now: now, history: s.History}
	reply, booking := handler(e, t)

	s.Record(models.SpeakerCustomer, utterance, now)
	s.Record(models.SpeakerAssistant, reply, now)
	s.UpdatedAt = now
	if err := e.store.Save(ctx, s); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			// Ended while this turn ran; nothing to complete.
			e.logger.Info().Str("session_id", sessionID).Msg("session ended mid-turn")
			return TurnResult{Reply: reply}
		}
		e.logger.Error().Err(err).Str("session_id", sessionID).Msg("session save failed")
		return TurnResult{Reply: MsgSessionLost}
	}

	if booking != nil {
		e.metrics.BookingConfirmed(booking.Source)
		e.logger.Info().Str("session_id", sessionID).Str("booking_id", booking.BookingID).Msg("booking confirmed")
		e.completer.Submit(*booking)
	}
	return TurnResult{Reply: reply, Step: s.Step, BookingID: s.BookingID}
}

// EndSession discards the session and any partial booking. Ending an unknown
// session is a no-op.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	unlock := e.locks.Lock(sessionID)
	defer unlock()
	return e.store.Delete(ctx, sessionID)
}

// Session returns a snapshot of the session; mutating it has no effect.
func (e *Engine) Session(ctx context.Context, sessionID string) (models.Session, error) {
	return e.store.Get(ctx, sessionID)
}

func (e *Engine) greeting(t *turn) (string, *models.FinalizedBooking) {
	if wantsBooking(t.utterance) {
		t.session.Step = models.StepGetName
		return MsgAskName, nil
	}
	return e.welcome(t), nil
}

// welcome asks the configured responder for a reply, falling back to the fixed
// welcome when it fails, is slow or says nothing.
func (e *Engine) welcome(t *turn) string {
	if strings.TrimSpace(t.utterance) == "" {
		return MsgWelcome
	}
	history := t.history
	if len(history) > maxResponderHistory {
		history = history[len(history)-maxResponderHistory:]
	}

	ctx, cancel := context.WithTimeout(t.ctx, e.aiTimeout)
	defer cancel()
	reply, err := e.responder.Reply(ctx, ai.ReplyRequest{
		SessionID: t.session.ID,
		Step:      t.session.Step,
		Utterance: t.utterance,
		Fallback:  MsgWelcome,
		History:   history,
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("session_id", t.session.ID).Msg("responder failed, using welcome")
		return MsgWelcome
	}
	if strings.TrimSpace(reply) == "" {
		return MsgWelcome
	}
	return reply
}

func (e *Engine) getName(t *turn) (string, *models.FinalizedBooking) {
	name, ok := extractName(t.utterance)
	if !ok {
		return MsgNameAgain, nil
	}
	t.session.CustomerName = name
	t.session.Booking.CustomerName = name
	t.session.Step = models.StepGetService
	return msgAskService(name), nil
}

func (e *Engine) getService(t *turn) (string, *models.FinalizedBooking) {
	key, ok := e.catalog.Match(t.utterance)
	if !ok {
		return MsgServiceAgain, nil
	}
	t.session.Booking.Service = key
	t.session.Step = models.StepGetDate
	return msgAskDate(e.catalog.Info(key)), nil
}

func (e *Engine) getDate(t *turn) (string, *models.FinalizedBooking) {
	date, ok := extractDate(t.utterance, t.now)
	if !ok {
		return MsgDateAgain, nil
	}
	t.session.Booking.Date = date
	t.session.Step = models.StepGetTime
	return msgAskTime(date), nil
}

func (e *Engine) getTime(t *turn) (string, *models.FinalizedBooking) {
	tm, ok := extractTime(t.utterance)
	if !ok {
		return MsgTimeAgain, nil
	}
	t.session.Booking.Time = tm
	t.session.Step = models.StepGetAddress
	return MsgAskAddress, nil
}

func (e *Engine) getAddress(t *turn) (string, *models.FinalizedBooking) {
	addr, ok := extractAddress(t.utterance)
	if !ok {
		return MsgAddressAgain, nil
	}
	t.session.Booking.Address = addr
	t.session.Step = models.StepConfirmBooking
	return msgConfirm(t.session.Booking), nil
}

func (e *Engine) confirmBooking(t *turn) (string, *models.FinalizedBooking) {
	switch classifyConfirmation(t.utterance) {
	case answerYes:
		b := finalize(*t.session, t.now)
		t.session.BookingID = b.BookingID
		t.session.Step = models.StepBookingComplete
		return msgConfirmed(b.BookingID), &b
	case answerNo:
		t.session.Reset()
		return MsgStartOver, nil
	default:
		return MsgYesOrNo, nil
	}
}

func (e *Engine) bookingComplete(t *turn) (string, *models.FinalizedBooking) {
	return MsgFarewell, nil
}

func finalize(s models.Session, at time.Time) models.FinalizedBooking {
	d := s.Booking
	phone := d.Phone
	if phone == "" {
		phone = s.Phone
	}
	return models.FinalizedBooking{
		BookingID:    NewBookingID(at),
		CustomerName: d.CustomerName,
		Phone:        phone,
		Service:      d.Service,
		Date:         d.Date,
		Time:         d.Time,
		Address:      d.Address,
		Notes:        d.Notes,
		Status:       models.BookingStatusConfirmed,
		Source:       s.Channel.Source(),
		CreatedAt:    at,
	}
}
