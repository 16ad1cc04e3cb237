package canvas

// Namespace scopes a run of Draw commands to a NamespaceID, used when
// several independent tools or layers emit into the same Drawing without
// colliding sprite or layer ids, per spec §4.B ("layer/sprite namespace").
type Namespace struct {
	ID NamespaceID
}

// Scoped records a Namespace(ns.ID) marker before fn runs and restores the
// previous namespace afterward via PushState/PopState semantics, so nested
// namespaces compose the way nested groups in the vector model do.
func (ns Namespace) Scoped(r *Recorder, fn func(*Recorder)) {
	r.PushState()
	r.Namespace(ns.ID)
	fn(r)
	r.PopState()
}

// SpriteOf qualifies a SpriteID by namespace for addressing purposes; two
// sprites with the same numeric id in different namespaces are distinct.
type SpriteOf struct {
	Namespace NamespaceID
	Sprite    SpriteID
}
