package resource

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
)

func TestRegistry_DynamicAccess(t *testing.T) {
	r := newTestRegistry(t, Config{})

	ctx, err := r.SetupContext("main")
	require.NoError(t, err)
	buf, err := r.MakeBuffer(BufferDesc{Label: "ubo", Size: 64, Usage: gputypes.BufferUsageUniform})
	require.NoError(t, err)
	img, err := r.MakeImage(colorTarget())
	require.NoError(t, err)
	shd, err := r.MakeShader(vertexShader())
	require.NoError(t, err)
	pip, err := r.MakePipeline(PipelineDesc{Label: "tri", Shader: shd})
	require.NoError(t, err)
	pass, err := r.MakePass(PassDesc{Label: "main", ColorAttachments: []ImageID{img}})
	require.NoError(t, err)

	handles := map[Kind]slotpool.Handle{
		KindBuffer:   buf.Handle(),
		KindImage:    img.Handle(),
		KindShader:   shd.Handle(),
		KindPipeline: pip.Handle(),
		KindPass:     pass.Handle(),
		KindContext:  ctx.Handle(),
	}
	for _, k := range Kinds {
		h := handles[k]
		assert.Equal(t, []slotpool.Handle{h}, r.Handles(k), k.String())
		assert.Equal(t, pool.StateValid, r.StateOf(k, h), k.String())
		desc, ok := r.Describe(k, h)
		require.True(t, ok, k.String())
		assert.Contains(t, desc, k.String())
	}

	desc, _ := r.Describe(KindBuffer, buf.Handle())
	assert.Contains(t, desc, `"ubo"`)
	assert.Contains(t, desc, "size=64")

	for _, k := range []Kind{KindPass, KindPipeline, KindShader, KindImage, KindBuffer} {
		require.NoError(t, r.Destroy(k, handles[k]), k.String())
		assert.Equal(t, pool.StateFree, r.StateOf(k, handles[k]))
		_, ok := r.Describe(k, handles[k])
		assert.False(t, ok)
	}
	require.NoError(t, r.Destroy(KindContext, ctx.Handle()))

	assert.ErrorIs(t, r.Destroy(Kind(99), 1), errors.ErrNotFound)
	assert.Nil(t, r.Handles(Kind(99)))
	assert.Equal(t, pool.StateFree, r.StateOf(Kind(99), 1))
}
