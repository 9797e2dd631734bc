package relight

// Merge folds src into r attribute by attribute. A set dirty bit on r keeps
// r's value; otherwise r adopts src's value. Adoption does not mark the bit
// dirty, only authoring does, so repeated merges of the same source are
// idempotent. The transform group moves atomically under its single bit.
func (r *LightRecord) Merge(src *LightRecord) {
	for i := range lightAttributes {
		d := &lightAttributes[i]
		if !r.Dirty.Has(d.Bit) {
			d.store(r, d.load(src))
		}
	}

	if !r.Dirty.Has(BitTransform) {
		r.adoptTransform(src)
	}

	if !r.hashFrozen && r.Kind != KindUnknown {
		r.Hash = r.stableHash()
	}
}

func (r *LightRecord) adoptTransform(src *LightRecord) {
	r.Position = src.Position
	r.XAxis = src.XAxis
	r.YAxis = src.YAxis
	r.ZAxis = src.ZAxis
	r.XScale = src.XScale
	r.YScale = src.YScale
	r.ZScale = src.ZScale
}

// MergeLegacy folds a legacy lighting call into r through a transient
// record. Attributes merge under the usual dirty gating, but the transform
// always comes from the call: the legacy source is the only transform
// authority on this path. A still-Unknown record is upgraded by the call's
// type, exactly once. An invalid type fails the whole operation and leaves r
// untouched.
func (r *LightRecord) MergeLegacy(call LegacyLight, opts ConvertOptions) bool {
	if !checkLegacyType(call.Type) {
		return false
	}

	// Skip conversion entirely when every field is already authored.
	if r.Dirty != allDirtyMask {
		in, ok := NewLegacyRecord(call, opts)
		if !ok {
			return false
		}

		for i := range lightAttributes {
			d := &lightAttributes[i]
			if !r.Dirty.Has(d.Bit) {
				d.store(r, d.load(in))
			}
		}
		r.adoptTransform(in)

		// Captured lights carry no identity of their own; they take the
		// frozen legacy hash so replacements keyed on the host's call still
		// match.
		if r.Hash == 0 && !r.hashFrozen {
			r.Hash = in.Hash
			r.hashFrozen = true
		}
	}

	if r.Kind == KindUnknown {
		r.Kind = resolveLegacyKind(call.Type)
	}

	if !r.hashFrozen {
		r.Hash = r.stableHash()
	}
	return true
}
