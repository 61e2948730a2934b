package behaviour

import "github.com/milk9111/rocketflight/common"

type fakeTransform struct {
	pos      common.Vec3
	sets     int
	rotation float64
	// frozenAtRotate records the body freeze state seen by each RotateZ call.
	body           *fakeBody
	frozenAtRotate []bool
}

func (f *fakeTransform) Position() common.Vec3 { return f.pos }

func (f *fakeTransform) SetPosition(p common.Vec3) {
	f.pos = p
	f.sets++
}

func (f *fakeTransform) RotateZ(degrees float64) {
	f.rotation += degrees
	if f.body != nil {
		f.frozenAtRotate = append(f.frozenAtRotate, f.body.frozen)
	}
}

type fakeBody struct {
	forces      []common.Vec3
	frozen      bool
	freezeCalls []bool
}

func (f *fakeBody) AddRelativeForce(v common.Vec3) { f.forces = append(f.forces, v) }

func (f *fakeBody) FreezeRotation(frozen bool) {
	f.frozen = frozen
	f.freezeCalls = append(f.freezeCalls, frozen)
}

type fakeAudio struct {
	playing bool
	played  []string
	stops   int
}

func (f *fakeAudio) PlayOneShot(clip string) {
	f.played = append(f.played, clip)
	f.playing = true
}

func (f *fakeAudio) Stop() {
	f.stops++
	f.playing = false
}

func (f *fakeAudio) IsPlaying() bool { return f.playing }

type fakeParticles struct {
	playing bool
	plays   int
	stops   int
}

func (f *fakeParticles) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeParticles) Stop() {
	f.playing = false
	f.stops++
}

type fakeInput struct {
	held    map[Action]bool
	pressed map[Action]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{held: map[Action]bool{}, pressed: map[Action]bool{}}
}

func (f *fakeInput) Held(a Action) bool    { return f.held[a] }
func (f *fakeInput) Pressed(a Action) bool { return f.pressed[a] }

type fakeScenes struct {
	current int
	count   int
	loads   []int
}

func (f *fakeScenes) Current() int { return f.current }
func (f *fakeScenes) Count() int   { return f.count }
func (f *fakeScenes) Load(i int)   { f.loads = append(f.loads, i) }

type scheduled struct {
	delay float64
	fn    func()
}

type fakeScheduler struct {
	pending []scheduled
}

func (f *fakeScheduler) After(delay float64, fn func()) {
	f.pending = append(f.pending, scheduled{delay: delay, fn: fn})
}

func (f *fakeScheduler) runAll() {
	pending := f.pending
	f.pending = nil
	for _, p := range pending {
		p.fn()
	}
}
