package lead

import (
	"io"
	"sync"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

var _ sheetCodec = &sheetCodecMock{}

type sheetCodecMock struct {
	DecodeFunc func(r io.Reader) ([]domain.ImportRow, error)
	EncodeFunc func(w io.Writer, leads []domain.Lead) error

	calls struct {
		Decode []struct {
			R io.Reader
		}
		Encode []struct {
			W     io.Writer
			Leads []domain.Lead
		}
	}
	lockDecode sync.RWMutex
	lockEncode sync.RWMutex
}

func (mock *sheetCodecMock) Decode(r io.Reader) ([]domain.ImportRow, error) {
	if mock.DecodeFunc == nil {
		panic("sheetCodecMock.DecodeFunc: method is nil but sheetCodec.Decode was just called")
	}
	callInfo := struct {
		R io.Reader
	}{R: r}
	mock.lockDecode.Lock()
	mock.calls.Decode = append(mock.calls.Decode, callInfo)
	mock.lockDecode.Unlock()
	return mock.DecodeFunc(r)
}

func (mock *sheetCodecMock) DecodeCalls() []struct {
	R io.Reader
} {
	mock.lockDecode.RLock()
	calls := mock.calls.Decode
	mock.lockDecode.RUnlock()
	return calls
}

func (mock *sheetCodecMock) Encode(w io.Writer, leads []domain.Lead) error {
	if mock.EncodeFunc == nil {
		panic("sheetCodecMock.EncodeFunc: method is nil but sheetCodec.Encode was just called")
	}
	callInfo := struct {
		W     io.Writer
		Leads []domain.Lead
	}{W: w, Leads: leads}
	mock.lockEncode.Lock()
	mock.calls.Encode = append(mock.calls.Encode, callInfo)
	mock.lockEncode.Unlock()
	return mock.EncodeFunc(w, leads)
}

func (mock *sheetCodecMock) EncodeCalls() []struct {
	W     io.Writer
	Leads []domain.Lead
} {
	mock.lockEncode.RLock()
	calls := mock.calls.Encode
	mock.lockEncode.RUnlock()
	return calls
}
