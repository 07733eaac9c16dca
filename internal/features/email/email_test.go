package email

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu     sync.Mutex
	emails []*Email
	err    error
}

func (s *recordingSender) Send(email *Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.emails = append(s.emails, email)
	return nil
}

func Test_QueueEmail_WithSender_WorkerDeliversMessage(t *testing.T) {
	sender := &recordingSender{}
	service := newEmailService("ost:email_queue:test:"+uuid.New().String(), sender)
	worker := newEmailWorkerService(service)
	t.Cleanup(func() { _ = service.queueService.ClearQueue(service.queueKey) })

	err := service.QueueEmail(" dev@example.com ", "Hello", "<p>Hi</p>")
	assert.NoError(t, err)

	err = worker.ExecuteAllTasksForTest()
	assert.NoError(t, err)

	assert.Len(t, sender.emails, 1)
	assert.Equal(t, "dev@example.com", sender.emails[0].To)
	assert.Equal(t, "Hello", sender.emails[0].Subject)
	assert.Equal(t, "<p>Hi</p>", sender.emails[0].HTMLBody)
}

func Test_QueueEmail_WithoutSender_DoesNotQueue(t *testing.T) {
	service := newEmailService("ost:email_queue:test:"+uuid.New().String(), nil)

	err := service.QueueEmail("dev@example.com", "Hello", "<p>Hi</p>")
	assert.NoError(t, err)

	length, err := service.queueService.QueueLength(service.queueKey)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func Test_QueueEmail_WithEmptyAddress_DoesNotQueue(t *testing.T) {
	service := newEmailService("ost:email_queue:test:"+uuid.New().String(), &recordingSender{})

	assert.NoError(t, service.QueueEmail("   ", "Hello", "<p>Hi</p>"))

	length, err := service.queueService.QueueLength(service.queueKey)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func Test_Worker_WhenSendFails_DropsMessageAndContinues(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	service := newEmailService("ost:email_queue:test:"+uuid.New().String(), sender)
	worker := newEmailWorkerService(service)
	t.Cleanup(func() { _ = service.queueService.ClearQueue(service.queueKey) })

	assert.NoError(t, service.QueueEmail("a@example.com", "One", "1"))
	assert.NoError(t, service.QueueEmail("b@example.com", "Two", "2"))

	assert.NoError(t, worker.ExecuteAllTasksForTest())

	length, err := service.queueService.QueueLength(service.queueKey)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), length)
	assert.Empty(t, sender.emails)
}

func Test_Worker_WhenStoppedWhileRateLimited_RequeuesMessageFirst(t *testing.T) {
	sender := &recordingSender{}
	service := newEmailService("ost:email_queue:test:"+uuid.New().String(), sender)
	worker := newEmailWorkerService(service)
	t.Cleanup(func() { _ = service.queueService.ClearQueue(service.queueKey) })

	require.NoError(t, service.QueueEmail("a@example.com", "One", "1"))
	require.NoError(t, service.QueueEmail("b@example.com", "Two", "2"))

	data, err := service.queueService.DequeueBlocking(service.queueKey, testDrainTimeout)
	require.NoError(t, err)
	require.NotNil(t, data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, worker.deliver(ctx, data))
	assert.Empty(t, sender.emails)

	length, err := service.queueService.QueueLength(service.queueKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	require.NoError(t, worker.ExecuteAllTasksForTest())

	require.Len(t, sender.emails, 2)
	assert.Equal(t, "One", sender.emails[0].Subject)
	assert.Equal(t, "Two", sender.emails[1].Subject)
}

func Test_RenderApplicationDecision_EscapesUserInput(t *testing.T) {
	subject, body, err := RenderApplicationDecision(ApplicationDecisionEmail{
		ApplicantName:   "<script>alert(1)</script>",
		ProjectTitle:    "Ledger",
		RoleTitle:       "Backend",
		RejectionReason: "Role needs more Go experience",
		ProjectURL:      "https://ost.dev/projects/1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Your application to Ledger was rejected", subject)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Role needs more Go experience")
	assert.NotContains(t, body, "<script>")
}

func Test_RenderApplicationDecision_WhenAccepted_MentionsInvitation(t *testing.T) {
	subject, body, err := RenderApplicationDecision(ApplicationDecisionEmail{
		ApplicantName: "Ada",
		ProjectTitle:  "Ledger",
		RoleTitle:     "Backend",
		IsAccepted:    true,
		ProjectURL:    "https://ost.dev/projects/1",
		RepositoryURL: "https://github.com/octocat/ledger",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Your application to Ledger was accepted", subject)
	assert.Contains(t, body, "https://github.com/octocat/ledger")
	assert.NotContains(t, body, "Reason:")
}
