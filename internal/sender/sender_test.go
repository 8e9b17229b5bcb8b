package sender

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freightlayer/extraction-engine/internal/model"
)

func TestClassify_CarrierDomain(t *testing.T) {
	c := Classify("bookings@maersk.com", "")
	assert.Equal(t, model.SenderCarrier, c.Category)
	assert.Equal(t, "Maersk", c.Carrier)
}

func TestClassify_ForwarderDomain(t *testing.T) {
	c := Classify("ops@globalfreightforwarder.com", "")
	assert.Equal(t, model.SenderFreightForwarder, c.Category)
	assert.Empty(t, c.Carrier)
}

func TestClassify_CustomsBrokerDomain(t *testing.T) {
	c := Classify("entries@acmecustomsbroker.com", "")
	assert.Equal(t, model.SenderCustomsBroker, c.Category)
}

func TestClassify_TerminalAndTruckingAndRail(t *testing.T) {
	assert.Equal(t, model.SenderTerminal, Classify("ops@apmterminal.com", "").Category)
	assert.Equal(t, model.SenderTrucking, Classify("dispatch@coastaldrayage.com", "").Category)
	assert.Equal(t, model.SenderRail, Classify("ops@unionrail.com", "").Category)
}

func TestClassify_UnrecognizedDomainIsOther(t *testing.T) {
	c := Classify("someone@example.com", "")
	assert.Equal(t, model.SenderOther, c.Category)
	assert.Empty(t, c.Carrier)
}

func TestClassify_EmptyIdentityIsOther(t *testing.T) {
	c := Classify("", "")
	assert.Equal(t, model.SenderOther, c.Category)
}

// TestClassify_InternalRelayPrefersOriginalSenderIdentity grounds §4.4:
// mail relayed through the operator's own infrastructure must resolve
// carrier from the original sender, not the relay domain.
func TestClassify_InternalRelayPrefersOriginalSenderIdentity(t *testing.T) {
	c := Classify("notify@mail-relay.internal", "dispatch@msc.com")
	assert.Equal(t, model.SenderInternalRelay, c.Category)
	assert.Equal(t, "MSC", c.Carrier)
}

func TestClassify_InternalRelayWithNoResolvableOriginal(t *testing.T) {
	c := Classify("notify@ops-relay.internal", "")
	assert.Equal(t, model.SenderInternalRelay, c.Category)
	assert.Empty(t, c.Carrier)
}

func TestClassify_InternalRelayWithUnresolvableOriginal(t *testing.T) {
	c := Classify("notify@notifications.internal", "someone@example.com")
	assert.Equal(t, model.SenderInternalRelay, c.Category)
	assert.Empty(t, c.Carrier)
}
