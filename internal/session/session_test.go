package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haythbl004/uni-console/internal/models"
)

func TestSessionFlashLifecycle(t *testing.T) {
	sess := &Session{ID: "sess-1"}
	now := time.Now()

	assert.Nil(t, sess.Flash("holidays", now))

	sess.SetFlash("holidays", models.NewFlash(models.FlashSuccess, "Holiday added successfully!", 3*time.Second))

	flash := sess.Flash("holidays", now)
	require.NotNil(t, flash)
	assert.Equal(t, models.FlashSuccess, flash.Kind)

	// Panels are independent.
	assert.Nil(t, sess.Flash("grades", now))

	// Expired messages are dropped on read.
	assert.Nil(t, sess.Flash("holidays", now.Add(10*time.Second)))
	assert.Nil(t, sess.Flashes["holidays"])
}

func TestSessionSetFlashDisplaces(t *testing.T) {
	sess := &Session{ID: "sess-1"}
	sess.SetFlash("grades", models.NewFlash(models.FlashError, "Failed to add grade", 3*time.Second))
	sess.SetFlash("grades", models.NewFlash(models.FlashSuccess, "Grade added successfully!", 3*time.Second))

	flash := sess.Flash("grades", time.Now())
	require.NotNil(t, flash)
	assert.Equal(t, models.FlashSuccess, flash.Kind)
	assert.Equal(t, "Grade added successfully!", flash.Message)
}
