package transport

import (
	"errors"
	"testing"
	"time"
)

func testTopics() TopicMap {
	return TopicMap{
		"orders":   {Name: "orders-v1", Partitions: 1},
		"payments": {Name: "payments-v1", Partitions: 3},
	}
}

func TestToInputRecord_ResolvesAndStampsSentinels(t *testing.T) {
	ts := time.Unix(42, 0)
	rec, err := ToInputRecord(testTopics(), Message{Topic: "orders", Timestamp: ts}, []byte("k1"), []byte("v-one"))
	if err != nil {
		t.Fatalf("ToInputRecord: %v", err)
	}
	if rec.Topic != "orders-v1" {
		t.Fatalf("want physical topic orders-v1, got %q", rec.Topic)
	}
	if rec.Partition != UnassignedPartition || rec.Offset != UnassignedOffset {
		t.Fatalf("want unassigned sentinels, got partition=%d offset=%d", rec.Partition, rec.Offset)
	}
	if !rec.Timestamp.Equal(ts) {
		t.Fatalf("want timestamp %v, got %v", ts, rec.Timestamp)
	}
	if rec.KeySize != 2 || rec.ValueSize != 5 {
		t.Fatalf("want sizes 2/5, got %d/%d", rec.KeySize, rec.ValueSize)
	}
}

func TestToInputRecord_NilFieldsHaveZeroSizes(t *testing.T) {
	rec, err := ToInputRecord(testTopics(), Message{Topic: "orders"}, nil, nil)
	if err != nil {
		t.Fatalf("ToInputRecord: %v", err)
	}
	if rec.KeySize != 0 || rec.ValueSize != 0 {
		t.Fatalf("want zero sizes, got %d/%d", rec.KeySize, rec.ValueSize)
	}
	if rec.Timestamp.IsZero() {
		t.Fatal("want creation timestamp for zero message timestamp")
	}
}

func TestToInputRecord_UnknownTopic(t *testing.T) {
	_, err := ToInputRecord(testTopics(), Message{Topic: "nope"}, nil, nil)
	if !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("want ErrUnknownTopic, got %v", err)
	}
}

func TestFromOutputRecord_LiftsFields(t *testing.T) {
	m := FromOutputRecord(&OutputRecord{Topic: "orders-v1", Partition: 2, Key: []byte("k"), Value: []byte("v")})
	if m.Topic != "orders-v1" || m.Partition != 2 {
		t.Fatalf("unexpected lift: %+v", m)
	}
	if string(m.Key.([]byte)) != "k" || string(m.Value.([]byte)) != "v" {
		t.Fatalf("unexpected key/value: %+v", m)
	}
}

func TestNewOutputRecord_DefaultsPartitionUnassigned(t *testing.T) {
	r := NewOutputRecord("t", nil, nil)
	if r.Partition != UnassignedPartition {
		t.Fatalf("want partition %d, got %d", UnassignedPartition, r.Partition)
	}
}

func TestTopicMap_LogicalFor(t *testing.T) {
	key, ok := testTopics().LogicalFor("payments-v1")
	if !ok || key != "payments" {
		t.Fatalf("want payments, got %q ok=%v", key, ok)
	}
	if _, ok := testTopics().LogicalFor("unknown"); ok {
		t.Fatal("want miss for unknown physical topic")
	}
}

func TestTopicMap_KeysSorted(t *testing.T) {
	keys := testTopics().Keys()
	if len(keys) != 2 || keys[0] != "orders" || keys[1] != "payments" {
		t.Fatalf("want sorted keys, got %v", keys)
	}
}
