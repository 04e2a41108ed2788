package hermes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "spechunter.catalog.1700000000000.discovered", SubjectCatalogDiscovered(1700000000000))
	assert.Equal(t, "spechunter.catalog.7.added", SubjectCatalogAdded(7))
	assert.Equal(t, "spechunter.session.abc.compare.toggled", SubjectCompareToggled("abc"))
	assert.Equal(t, "spechunter.session.abc.discovery.failed", SubjectDiscoveryFailed("abc"))
}

func TestNoop(t *testing.T) {
	var c Client = Noop{}
	assert.NoError(t, c.Publish(SubjectCatalogAdded(1), CatalogItemEvent{ItemID: 1}))
	assert.NoError(t, c.Subscribe(SubjectCatalogAll, func(string, []byte) {}))
	c.Close()
}

func TestInStream(t *testing.T) {
	assert.True(t, inStream(SubjectCatalogAll))
	assert.True(t, inStream(SubjectCatalogAdded(7)))
	assert.True(t, inStream("spechunter.session.>"))
	assert.False(t, inStream("spechunter.>"))
	assert.False(t, inStream("swarm.task.>"))
}

func TestStreamConfig(t *testing.T) {
	cfg := streamConfig()
	assert.Equal(t, StreamName, cfg.Name)
	assert.Equal(t, 720*time.Hour, cfg.MaxAge)
	assert.ElementsMatch(t, []string{"spechunter.catalog.>", "spechunter.session.>"}, cfg.Subjects)
}
