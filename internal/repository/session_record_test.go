package repository

import (
	"encoding/json"
	"testing"

	"github.com/interviewgenius/server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSessionAcceptsWellFormedRecord(t *testing.T) {
	data, err := json.Marshal(sessionFixture())
	require.NoError(t, err)

	sess := decodeSession(data)
	require.NotNil(t, sess)
	assert.Equal(t, domain.PhaseInProgress, sess.Phase)
	assert.Len(t, sess.Questions, 5)
}

func TestDecodeSessionAcceptsBareConfiguringRecord(t *testing.T) {
	data, err := json.Marshal(domain.NewSession())
	require.NoError(t, err)

	assert.NotNil(t, decodeSession(data))
}

func TestDecodeSessionRejectsStructurallyBrokenRecords(t *testing.T) {
	noAnswers := sessionFixture()
	noAnswers.Answers = nil

	missingRecord := sessionFixture()
	delete(missingRecord.Answers, "q-3")

	nilRecord := sessionFixture()
	nilRecord.Answers["q-3"] = nil

	noQuestions := sessionFixture()
	noQuestions.Questions = nil

	cases := map[string]*domain.Session{
		"answers mapping missing":       noAnswers,
		"answer record missing":         missingRecord,
		"answer record null":            nilRecord,
		"in progress with no questions": noQuestions,
	}
	for name, sess := range cases {
		data, err := json.Marshal(sess)
		require.NoError(t, err)
		assert.Nilf(t, decodeSession(data), "record with %s must be treated as absent", name)
	}
}

func TestDecodeSessionRejectsCorruptAndUnknownPhase(t *testing.T) {
	assert.Nil(t, decodeSession([]byte(`{"phase": [broken`)))
	assert.Nil(t, decodeSession([]byte(`{"phase":"paused"}`)))
}
