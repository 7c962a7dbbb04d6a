package panel

import (
	"context"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/host"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

func (p *Panel) copyPrompt(ctx context.Context) {
	prompt, _ := p.fields()
	_, err := hostfuncs.Call[hostfuncs.ClipboardSetRequest, hostfuncs.ClipboardResponse](
		hostfuncs.WithCaller(ctx, "panel"), p.host, hostfuncs.FuncClipboardSet,
		hostfuncs.ClipboardSetRequest{Text: prompt})
	if err != nil {
		p.fail(ctx, OpCopyPrompt, err)
		return
	}
	p.notify(ctx, entities.LevelInfo, "Prompt copied to clipboard.")
}

func (p *Panel) runScript(ctx context.Context) {
	_, script := p.fields()
	res, err := p.eval.Exec(ctx, script)
	if err != nil {
		p.fail(ctx, OpRunScript, err)
		return
	}
	if p.variant == entities.PanelVariantResponse {
		p.setResponse(res.Output)
		return
	}
	p.log.Append(res.Output)
}

func (p *Panel) sendPrompt(_ context.Context) {
	prompt, _ := p.fields()
	p.log.Append("Prompt sent: " + prompt)
}

func (p *Panel) createCube(ctx context.Context) {
	_, err := hostfuncs.Call[hostfuncs.AddPrimitiveRequest, hostfuncs.AddPrimitiveResponse](
		hostfuncs.WithCaller(ctx, "panel"), p.host, hostfuncs.FuncAddPrimitive,
		hostfuncs.AddPrimitiveRequest{Kind: string(entities.PrimitiveCube)})
	if err != nil {
		p.fail(ctx, OpCreateCube, err)
		return
	}
	p.log.Append("Cube created.")
}

func (p *Panel) getSceneInfo(ctx context.Context) {
	resp, err := hostfuncs.Call[hostfuncs.SceneObjectsRequest, hostfuncs.SceneObjectsResponse](
		hostfuncs.WithCaller(ctx, "panel"), p.host, hostfuncs.FuncSceneObjects,
		hostfuncs.SceneObjectsRequest{})
	if err != nil {
		p.fail(ctx, OpGetSceneInfo, err)
		return
	}
	p.log.Append("Objects: " + host.ReprStrings(resp.Objects))
}
