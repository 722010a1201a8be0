package usecase

import (
	"context"
	"sync"
	"time"

	"lynxhire/internal/domain/application"
	"lynxhire/internal/domain/billing"
	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/message"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"
	"lynxhire/internal/scoring"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	byID map[uuid.UUID]profile.Profile
}

func newFakeProfiles(ps ...profile.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[uuid.UUID]profile.Profile{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p profile.Profile) error {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return repository.ErrEmailTaken
		}
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return profile.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (profile.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return profile.Profile{}, repository.ErrNotFound
}

func (f *fakeProfiles) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeProfiles) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeProfiles) UpdateFullName(_ context.Context, id uuid.UUID, fullName *string) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.FullName = fullName
	f.byID[id] = p
	return nil
}

func (f *fakeProfiles) SetOnboardingComplete(_ context.Context, id uuid.UUID) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.OnboardingComplete = true
	f.byID[id] = p
	return nil
}

func (f *fakeProfiles) NamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok && p.FullName != nil {
			out[id] = *p.FullName
		}
	}
	return out, nil
}

type fakeCandidates struct {
	byProfile map[uuid.UUID]profile.CandidateProfile
}

func newFakeCandidates(cps ...profile.CandidateProfile) *fakeCandidates {
	f := &fakeCandidates{byProfile: map[uuid.UUID]profile.CandidateProfile{}}
	for _, cp := range cps {
		f.byProfile[cp.ProfileID] = cp
	}
	return f
}

func (f *fakeCandidates) GetByProfileID(_ context.Context, id uuid.UUID) (profile.CandidateProfile, error) {
	cp, ok := f.byProfile[id]
	if !ok {
		return profile.CandidateProfile{}, repository.ErrNotFound
	}
	return cp, nil
}

func (f *fakeCandidates) Upsert(_ context.Context, cp profile.CandidateProfile) (profile.CandidateProfile, error) {
	f.byProfile[cp.ProfileID] = cp
	return cp, nil
}

func (f *fakeCandidates) SetResumeURL(_ context.Context, id uuid.UUID, url string) error {
	cp := f.byProfile[id]
	cp.ProfileID = id
	cp.ResumeURL = &url
	f.byProfile[id] = cp
	return nil
}

type fakeCompanies struct {
	byProfile map[uuid.UUID]profile.Company
}

func newFakeCompanies(cs ...profile.Company) *fakeCompanies {
	f := &fakeCompanies{byProfile: map[uuid.UUID]profile.Company{}}
	for _, c := range cs {
		f.byProfile[c.ProfileID] = c
	}
	return f
}

func (f *fakeCompanies) GetByProfileID(_ context.Context, id uuid.UUID) (profile.Company, error) {
	c, ok := f.byProfile[id]
	if !ok {
		return profile.Company{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanies) Upsert(_ context.Context, c profile.Company) (profile.Company, error) {
	f.byProfile[c.ProfileID] = c
	return c, nil
}

func (f *fakeCompanies) SetLogoURL(_ context.Context, id uuid.UUID, url string) error {
	c, ok := f.byProfile[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LogoURL = &url
	f.byProfile[id] = c
	return nil
}

type fakeJobs struct {
	byID       map[uuid.UUID]job.Posting
	listCalls  int
	createdIDs []uuid.UUID
}

func newFakeJobs(ps ...job.Posting) *fakeJobs {
	f := &fakeJobs{byID: map[uuid.UUID]job.Posting{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	p.CreatedAt = time.Now().UTC()
	f.byID[p.ID] = p
	f.createdIDs = append(f.createdIDs, p.ID)
	return p, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := f.byID[id]
	if !ok {
		return job.Posting{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeJobs) UpdateStatus(_ context.Context, id, ownerID uuid.UUID, status job.Status) error {
	p, ok := f.byID[id]
	if !ok || p.OwnerProfileID != ownerID {
		return repository.ErrNotFound
	}
	p.Status = status
	f.byID[id] = p
	return nil
}

func (f *fakeJobs) ListActive(_ context.Context, _ job.ListFilter) ([]job.Posting, error) {
	f.listCalls++
	var out []job.Posting
	for _, p := range f.byID {
		if p.Status == job.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobs) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]job.Posting, error) {
	var out []job.Posting
	for _, p := range f.byID {
		if p.OwnerProfileID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobs) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	n := 0
	for _, p := range f.byID {
		if p.OwnerProfileID == ownerID && p.Status == job.StatusActive {
			n++
		}
	}
	return n, nil
}

type fakeApps struct {
	jobs   *fakeJobs
	byID   map[uuid.UUID]application.Application
	scores map[uuid.UUID]int
	// raceOnCreate simulates a concurrent insert winning the unique index.
	raceOnCreate bool
}

func newFakeApps(jobs *fakeJobs, as ...application.Application) *fakeApps {
	f := &fakeApps{jobs: jobs, byID: map[uuid.UUID]application.Application{}, scores: map[uuid.UUID]int{}}
	for _, a := range as {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeApps) ExistsForPair(_ context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	for _, a := range f.byID {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApps) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if f.raceOnCreate {
		return application.Application{}, repository.ErrDuplicate
	}
	if exists, _ := f.ExistsForPair(ctx, a.JobID, a.CandidateID); exists {
		return application.Application{}, repository.ErrDuplicate
	}
	a.CreatedAt = time.Now().UTC()
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeApps) GetWithOwnership(_ context.Context, id uuid.UUID) (application.Ownership, error) {
	a, ok := f.byID[id]
	if !ok {
		return application.Ownership{}, repository.ErrNotFound
	}
	p, ok := f.jobs.byID[a.JobID]
	if !ok {
		return application.Ownership{}, repository.ErrNotFound
	}
	return application.Ownership{Application: a, JobOwnerID: p.OwnerProfileID, JobTitle: p.Title}, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) error {
	a, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	f.byID[id] = a
	return nil
}

func (f *fakeApps) SetMatchScore(_ context.Context, id uuid.UUID, score int) error {
	a, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.AIMatchScore = &score
	f.byID[id] = a
	f.scores[id] = score
	return nil
}

func (f *fakeApps) ListByCandidate(_ context.Context, candidateID uuid.UUID, _ int) ([]repository.CandidateApplicationRow, error) {
	var out []repository.CandidateApplicationRow
	for _, a := range f.byID {
		if a.CandidateID == candidateID {
			out = append(out, repository.CandidateApplicationRow{Application: a, JobTitle: f.jobs.byID[a.JobID].Title})
		}
	}
	return out, nil
}

func (f *fakeApps) ListByJob(_ context.Context, jobID uuid.UUID) ([]repository.JobApplicationRow, error) {
	var out []repository.JobApplicationRow
	for _, a := range f.byID {
		if a.JobID == jobID {
			out = append(out, repository.JobApplicationRow{Application: a})
		}
	}
	return out, nil
}

func (f *fakeApps) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	rows, _ := f.ListByCandidate(ctx, candidateID, 0)
	return len(rows), nil
}

func (f *fakeApps) CountForOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	n := 0
	for _, a := range f.byID {
		if f.jobs.byID[a.JobID].OwnerProfileID == ownerID {
			n++
		}
	}
	return n, nil
}

type fakeSubs struct {
	byProfile      map[uuid.UUID]billing.Subscription
	saves          int
	customerWrites int
	failSave       error
	beforeSave     func()
}

func newFakeSubs(ss ...billing.Subscription) *fakeSubs {
	f := &fakeSubs{byProfile: map[uuid.UUID]billing.Subscription{}}
	for _, s := range ss {
		f.byProfile[s.ProfileID] = s
	}
	return f
}

func (f *fakeSubs) GetByProfileID(_ context.Context, id uuid.UUID) (billing.Subscription, error) {
	s, ok := f.byProfile[id]
	if !ok {
		return billing.Subscription{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubs) GetBySubscriptionID(_ context.Context, subscriptionID string) (billing.Subscription, error) {
	for _, s := range f.byProfile {
		if s.SubscriptionID != nil && *s.SubscriptionID == subscriptionID {
			return s, nil
		}
	}
	return billing.Subscription{}, repository.ErrNotFound
}

func (f *fakeSubs) Save(_ context.Context, s billing.Subscription) error {
	if f.beforeSave != nil {
		f.beforeSave()
	}
	if f.failSave != nil {
		return f.failSave
	}
	f.saves++
	f.byProfile[s.ProfileID] = s
	return nil
}

func (f *fakeSubs) SetCustomerID(_ context.Context, id uuid.UUID, customerID string) error {
	f.customerWrites++
	s, ok := f.byProfile[id]
	if !ok {
		s = billing.Default(id)
	}
	s.CustomerID = &customerID
	f.byProfile[id] = s
	return nil
}

type notification struct {
	UserID uuid.UUID
	Event  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (f *fakeNotifier) Notify(userID uuid.UUID, event string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{UserID: userID, Event: event})
}

type fakeStrategy struct {
	raw   scoring.Raw
	err   error
	calls int
}

func (f *fakeStrategy) Score(context.Context, scoring.MatchContext) (scoring.Raw, error) {
	f.calls++
	return f.raw, f.err
}

type fakeVerifier struct {
	env billing.Envelope
	err error
}

func (f fakeVerifier) Verify([]byte, string) (billing.Envelope, error) {
	return f.env, f.err
}

type fakeProvider struct {
	subs         *fakeSubs
	customers    int
	lastCheckout CheckoutSessionInput
	// persistedFirst is set when the customer id was already stored at the
	// time the checkout session was requested.
	persistedFirst bool
}

func (f *fakeProvider) CreateCustomer(_ context.Context, _ string, _ uuid.UUID) (string, error) {
	f.customers++
	return "cus_test", nil
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, in CheckoutSessionInput) (string, error) {
	f.lastCheckout = in
	if f.subs != nil {
		if s, ok := f.subs.byProfile[in.ProfileID]; ok && s.CustomerID != nil && *s.CustomerID == in.CustomerID {
			f.persistedFirst = true
		}
	}
	return "https://checkout.example/session", nil
}

func (f *fakeProvider) CreatePortalSession(_ context.Context, customerID, _ string) (string, error) {
	return "https://billing.example/" + customerID, nil
}

// fakeGuard behaves like Redis: calls fail once ctx is done.
type fakeGuard struct {
	keys map[string]bool
	err  error
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{keys: map[string]bool{}}
}

func (f *fakeGuard) Exists(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return f.keys[key], nil
}

func (f *fakeGuard) SetIfNotExists(ctx context.Context, key, _ string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

type fakeCache struct {
	data     map[string][]job.Posting
	gets     int
	hits     int
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]job.Posting{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.gets++
	v, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	*(out.(*[]job.Posting)) = v
	return true, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.([]job.Posting)
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	f.data = map[string][]job.Posting{}
	return nil
}

type fakeSaved struct {
	jobs  *fakeJobs
	pairs map[[2]uuid.UUID]bool
}

func newFakeSaved(jobs *fakeJobs) *fakeSaved {
	return &fakeSaved{jobs: jobs, pairs: map[[2]uuid.UUID]bool{}}
}

func (f *fakeSaved) Toggle(_ context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	key := [2]uuid.UUID{candidateID, jobID}
	if f.pairs[key] {
		delete(f.pairs, key)
		return false, nil
	}
	f.pairs[key] = true
	return true, nil
}

func (f *fakeSaved) IsSaved(_ context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	return f.pairs[[2]uuid.UUID{candidateID, jobID}], nil
}

func (f *fakeSaved) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]job.Posting, error) {
	var out []job.Posting
	for key := range f.pairs {
		if key[0] != candidateID {
			continue
		}
		if p := f.jobs.byID[key[1]]; p.Status == job.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSaved) CountByCandidate(_ context.Context, candidateID uuid.UUID) (int, error) {
	n := 0
	for key := range f.pairs {
		if key[0] == candidateID {
			n++
		}
	}
	return n, nil
}

type fakeMessages struct {
	all      []message.Message
	markRead [][2]uuid.UUID
}

func (f *fakeMessages) Create(_ context.Context, m message.Message) (message.Message, error) {
	m.CreatedAt = time.Now().UTC()
	f.all = append([]message.Message{m}, f.all...)
	return m, nil
}

func (f *fakeMessages) ListForUser(_ context.Context, userID uuid.UUID, _ int) ([]message.Message, error) {
	var out []message.Message
	for _, m := range f.all {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) Thread(_ context.Context, userID, otherID uuid.UUID) ([]message.Message, error) {
	var out []message.Message
	for i := len(f.all) - 1; i >= 0; i-- {
		m := f.all[i]
		if (m.SenderID == userID && m.RecipientID == otherID) || (m.SenderID == otherID && m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, senderID, recipientID uuid.UUID) error {
	f.markRead = append(f.markRead, [2]uuid.UUID{senderID, recipientID})
	for i := range f.all {
		if f.all[i].SenderID == senderID && f.all[i].RecipientID == recipientID {
			f.all[i].IsRead = true
		}
	}
	return nil
}

func candidate() profile.Caller {
	return profile.Caller{ID: uuid.New(), Role: profile.RoleCandidate}
}

func employer() profile.Caller {
	return profile.Caller{ID: uuid.New(), Role: profile.RoleEmployer}
}

func activeJob(owner uuid.UUID) job.Posting {
	return job.Posting{
		ID:             uuid.New(),
		OwnerProfileID: owner,
		Status:         job.StatusActive,
		Title:          "Backend Developer",
		Description:    "Build APIs",
		WorkType:       "full_time",
		LocationType:   "remote",
	}
}
