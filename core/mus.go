package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain records. The record shapes are
// flat (strings and small ints), so the serializers are written by hand in
// the usual Marshal/Unmarshal/Size/Skip form instead of being generated.
var (
	IDMUS          = idMUS{}
	SpeakerTypeMUS = speakerTypeMUS{}
	UtteranceMUS   = utteranceMUS{}
	TranscriptMUS  = transcriptMUS{}
)

var utteranceSliceMUS = ord.NewSliceSer[Utterance](UtteranceMUS)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (s idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type speakerTypeMUS struct{}

func (s speakerTypeMUS) Marshal(v SpeakerType, bs []byte) int {
	return varint.Int.Marshal(int(v), bs)
}

func (s speakerTypeMUS) Unmarshal(bs []byte) (SpeakerType, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return SpeakerType(v), n, err
}

func (s speakerTypeMUS) Size(v SpeakerType) int {
	return varint.Int.Size(int(v))
}

func (s speakerTypeMUS) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

type utteranceMUS struct{}

func (s utteranceMUS) Marshal(v Utterance, bs []byte) (n int) {
	n = ord.String.Marshal(v.Speaker, bs)
	n += SpeakerTypeMUS.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.Start, bs[n:])
	n += ord.String.Marshal(v.End, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	return
}

func (s utteranceMUS) Unmarshal(bs []byte) (v Utterance, n int, err error) {
	var n1 int
	v.Speaker, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Type, n1, err = SpeakerTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Start, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.End, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s utteranceMUS) Size(v Utterance) (size int) {
	size = ord.String.Size(v.Speaker)
	size += SpeakerTypeMUS.Size(v.Type)
	size += ord.String.Size(v.Start)
	size += ord.String.Size(v.End)
	size += ord.String.Size(v.Text)
	return
}

func (s utteranceMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = SpeakerTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type transcriptMUS struct{}

func (s transcriptMUS) Marshal(v Transcript, bs []byte) (n int) {
	n = ord.String.Marshal(v.Key, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += utteranceSliceMUS.Marshal(v.Utterances, bs[n:])
	n += varint.Int64.Marshal(v.LoadedAt.UnixMicro(), bs[n:])
	return
}

func (s transcriptMUS) Unmarshal(bs []byte) (v Transcript, n int, err error) {
	var n1 int
	v.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Utterances, n1, err = utteranceSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LoadedAt = time.UnixMicro(micros).UTC()
	return
}

func (s transcriptMUS) Size(v Transcript) (size int) {
	size = ord.String.Size(v.Key)
	size += ord.String.Size(v.Name)
	size += utteranceSliceMUS.Size(v.Utterances)
	size += varint.Int64.Size(v.LoadedAt.UnixMicro())
	return
}

func (s transcriptMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = utteranceSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
