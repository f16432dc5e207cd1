package resource

import (
	"github.com/gogpu/gputypes"

	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

// MakeBuffer creates a buffer owned by the current context.
func (r *Registry) MakeBuffer(desc BufferDesc) (BufferID, error) {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	payload := Buffer{
		Label: truncateLabel(desc.Label),
		Size:  desc.Size,
		Usage: desc.Usage,
		Owner: r.current,
	}
	h, err := create(r, r.buffers, KindBuffer, payload, func(b *Buffer) error {
		if b.Size == 0 {
			return invalidInput(KindBuffer, "size", "buffer size must be positive")
		}
		if b.Usage == 0 {
			return invalidInput(KindBuffer, "usage", "buffer usage must not be empty")
		}
		return nil
	})
	return BufferID(h), err
}

// DestroyBuffer releases a buffer.
func (r *Registry) DestroyBuffer(id BufferID) error {
	return r.buffers.Release(id.Handle())
}

// Buffer returns a copy of a live buffer record.
func (r *Registry) Buffer(id BufferID) (Buffer, bool) {
	return r.buffers.Get(id.Handle())
}

// BufferState returns the slot state of a buffer.
func (r *Registry) BufferState(id BufferID) pool.State {
	return r.buffers.State(id.Handle())
}

// MakeImage creates an image owned by the current context.
func (r *Registry) MakeImage(desc ImageDesc) (ImageID, error) {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()

	payload := Image{
		Label:       truncateLabel(desc.Label),
		Width:       desc.Width,
		Height:      desc.Height,
		Depth:       orOne(desc.Depth),
		MipLevels:   orOne(desc.MipLevels),
		SampleCount: orOne(desc.SampleCount),
		Format:      desc.Format,
		Dimension:   desc.Dimension,
		Usage:       desc.Usage,
		Owner:       r.current,
	}
	h, err := create(r, r.images, KindImage, payload, validateImage)
	return ImageID(h), err
}

func validateImage(img *Image) error {
	if img.Width == 0 || img.Height == 0 {
		return invalidInput(KindImage, "size", "image width and height must be positive")
	}
	if img.Format == gputypes.TextureFormatUndefined {
		return invalidInput(KindImage, "format", "image format must be set")
	}
	switch img.SampleCount {
	case 1, 4:
	default:
		return errors.New(errors.PhaseCreate, errors.KindInvalidInput).
			Path(KindImage.String(), "sample_count").
			Value(img.SampleCount).
			Detail("sample count %d not supported (1 or 4)", img.SampleCount).
			Build()
	}
	if img.SampleCount > 1 && img.MipLevels > 1 {
		return invalidInput(KindImage, "mip_levels", "multisampled images cannot have mip levels")
	}
	return nil
}

func orOne(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}

// DestroyImage releases an image.
func (r *Registry) DestroyImage(id ImageID) error {
	return r.images.Release(id.Handle())
}

// Image returns a copy of a live image record.
func (r *Registry) Image(id ImageID) (Image, bool) {
	return r.images.Get(id.Handle())
}

// ImageState returns the slot state of an image.
func (r *Registry) ImageState(id ImageID) pool.State {
	return r.images.State(id.Handle())
}
