package kernel

// Queue is a fixed-size circular buffer of opaque, fixed-size messages
// plus a FIFO read-wait list (spec §4.9). Bytes are copied bitwise; the
// queue is agnostic to payload type — callers pass []byte of exactly
// MsgSize length.
type Queue struct {
	buffer   []byte
	msgSize  int
	capacity int
	head     int
	tail     int
	count    int
	waitRead list
}

// QueueInit initializes queue over buffer, which must be at least
// capacity*msgSize bytes. The caller owns buffer's storage.
func (k *Kernel) QueueInit(q *Queue, buffer []byte, msgSize, capacity int) Status {
	if q == nil || buffer == nil || msgSize <= 0 || capacity <= 0 || len(buffer) < msgSize*capacity {
		return Param
	}
	q.buffer = buffer
	q.msgSize = msgSize
	q.capacity = capacity
	q.head = 0
	q.tail = 0
	q.count = 0
	q.waitRead.init()
	return Ok
}

// QueueSend copies msg (exactly msgSize bytes) into the queue. Senders
// never block (spec §4.9 design note): a full queue returns QFull
// immediately rather than waiting. If a reader is already blocked, it is
// woken and a switch requested.
func (k *Kernel) QueueSend(q *Queue, msg []byte) Status {
	if q == nil || msg == nil || len(msg) != q.msgSize {
		return Param
	}
	k.enterCritical()
	defer k.exitCritical()
	return k.queueSendLocked(q, msg, false, nil)
}

// QueueSendFromISR is QueueSend's ISR-safe counterpart (spec §4.9, §4.7):
// it must not be called from task context and never toggles the hardware
// mask. higherPrioWoken is set true if a woken reader outranks the
// current task.
func (k *Kernel) QueueSendFromISR(q *Queue, msg []byte, higherPrioWoken *bool) Status {
	if q == nil || msg == nil || len(msg) != q.msgSize {
		return Param
	}
	return k.queueSendLocked(q, msg, true, higherPrioWoken)
}

func (k *Kernel) queueSendLocked(q *Queue, msg []byte, fromISR bool, higherPrioWoken *bool) Status {
	if q.count >= q.capacity {
		return QFull
	}
	copy(q.buffer[q.head*q.msgSize:(q.head+1)*q.msgSize], msg)
	q.head = (q.head + 1) % q.capacity
	q.count++

	if !q.waitRead.empty() {
		woken := q.waitRead.popHead()
		woken.State = Ready
		k.readyAdd(woken)
		if fromISR {
			if higherPrioWoken != nil && k.current != nil && woken.Priority < k.current.Priority {
				*higherPrioWoken = true
			}
		} else {
			k.requestSwitch()
		}
	}
	return Ok
}

// QueueReceive blocks (FIFO among readers) while the queue is empty, then
// copies the oldest message into msg (which must be msgSize bytes).
func (k *Kernel) QueueReceive(q *Queue, msg []byte) Status {
	if q == nil || msg == nil || len(msg) != q.msgSize {
		return Param
	}
	k.enterCritical()
	for q.count == 0 {
		k.blockOn(&q.waitRead)
		k.exitCritical()
		k.enterCritical()
	}
	copy(msg, q.buffer[q.tail*q.msgSize:(q.tail+1)*q.msgSize])
	q.tail = (q.tail + 1) % q.capacity
	q.count--
	k.exitCritical()
	return Ok
}

// QueueReceiveFromISR never blocks: it returns Resource if the queue is
// empty, otherwise copies and advances exactly like QueueReceive.
func (k *Kernel) QueueReceiveFromISR(q *Queue, msg []byte) Status {
	if q == nil || msg == nil || len(msg) != q.msgSize {
		return Param
	}
	if q.count == 0 {
		return Resource
	}
	copy(msg, q.buffer[q.tail*q.msgSize:(q.tail+1)*q.msgSize])
	q.tail = (q.tail + 1) % q.capacity
	q.count--
	return Ok
}
