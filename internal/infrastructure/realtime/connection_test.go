package realtime

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestConnectionSendSurvivesConcurrentClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		conn := testConn("c")

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					_ = conn.Send([]byte("x")) // must never panic
				}
			}()
		}
		conn.Close(websocket.CloseGoingAway, "test")
		wg.Wait()
	}
}

func TestConnectionSendAfterClose(t *testing.T) {
	conn := testConn("c")
	conn.Close(websocket.CloseNormalClosure, "bye")

	assert.ErrorIs(t, conn.Send([]byte("x")), ErrConnectionClosed)
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	conn := testConn("c")
	conn.Close(websocket.CloseNormalClosure, "bye")
	conn.Close(websocket.CloseNormalClosure, "bye again")

	assert.ErrorIs(t, conn.Send([]byte("x")), ErrConnectionClosed)
}

func TestConnectionFullBufferClosesConnection(t *testing.T) {
	conn := testConn("c") // buffer of 16, no write loop draining it

	var sendErr error
	for i := 0; i < 32; i++ {
		if sendErr = conn.Send([]byte("x")); sendErr != nil {
			break
		}
	}
	assert.Error(t, sendErr, "a full buffer must fail the send and close the connection")
	assert.ErrorIs(t, conn.Send([]byte("x")), ErrConnectionClosed)
}
