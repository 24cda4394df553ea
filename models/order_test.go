package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableName(t *testing.T) {
	order := Order{}
	assert.Equal(t, "orders", order.TableName(), "Table name should be 'orders'")
}

func TestOrderIsParticipant(t *testing.T) {
	order := Order{ID: 1, RequesterID: 10}

	owner := User{ID: 10, Role: RoleRequester}
	otherRequester := User{ID: 11, Role: RoleRequester}
	reviewer := User{ID: 20, Role: RoleReviewer}
	noRole := User{ID: 30}

	assert.True(t, order.IsParticipant(&owner), "owning requester participates")
	assert.False(t, order.IsParticipant(&otherRequester), "another requester does not participate")
	assert.True(t, order.IsParticipant(&reviewer), "any reviewer participates")
	assert.False(t, order.IsParticipant(&noRole), "unknown role does not participate")
}
