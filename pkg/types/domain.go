package types

// ModelKind identifies the role a model plays inside a suite.
type ModelKind string

const (
	KindBase       ModelKind = "base"
	KindRefiner    ModelKind = "refiner"
	KindVAE        ModelKind = "vae"
	KindLoRA       ModelKind = "lora"
	KindControlNet ModelKind = "controlnet"
)

// Kinds lists every model kind in the fixed load order: base, refiner,
// VAE, then LoRA and ControlNet adapters.
func Kinds() []ModelKind {
	return []ModelKind{KindBase, KindRefiner, KindVAE, KindLoRA, KindControlNet}
}

// SuiteConfiguration describes a named, composed set of model files that is
// loaded and unloaded as one unit.
type SuiteConfiguration struct {
	// Unique suite name used as the cache key.
	// example: basic_sdxl
	Name string `json:"name" yaml:"name" toml:"name" example:"basic_sdxl"`
	// Path to the base model file. Required.
	// example: /models/base/sd_xl_base_1.0.safetensors
	BaseModel string `json:"base_model" yaml:"base_model" toml:"base_model" example:"/models/base/sd_xl_base_1.0.safetensors"`
	// Optional path to a refiner model.
	RefinerModel string `json:"refiner_model,omitempty" yaml:"refiner_model" toml:"refiner_model"`
	// Optional path to a standalone VAE.
	VAEModel string `json:"vae_model,omitempty" yaml:"vae_model" toml:"vae_model"`
	// LoRA adapter paths, applied in order.
	LoRAModels []string `json:"lora_models,omitempty" yaml:"lora_models" toml:"lora_models"`
	// ControlNet adapter paths, applied in order.
	ControlNetModels []string `json:"controlnet_models,omitempty" yaml:"controlnet_models" toml:"controlnet_models"`
	// Soft per-suite memory cap in MB (0 = no per-suite cap).
	// example: 9000
	MaxMemoryMB int `json:"max_memory_mb,omitempty" yaml:"max_memory_mb" toml:"max_memory_mb" example:"9000"`
}

// ModelPaths returns every referenced path with its kind, in load order.
func (c SuiteConfiguration) ModelPaths() []ModelRef {
	refs := []ModelRef{{Kind: KindBase, Path: c.BaseModel}}
	if c.RefinerModel != "" {
		refs = append(refs, ModelRef{Kind: KindRefiner, Path: c.RefinerModel})
	}
	if c.VAEModel != "" {
		refs = append(refs, ModelRef{Kind: KindVAE, Path: c.VAEModel})
	}
	for _, p := range c.LoRAModels {
		refs = append(refs, ModelRef{Kind: KindLoRA, Path: p})
	}
	for _, p := range c.ControlNetModels {
		refs = append(refs, ModelRef{Kind: KindControlNet, Path: p})
	}
	return refs
}

// ModelRef pairs a model path with the role it plays in a suite.
type ModelRef struct {
	Kind ModelKind `json:"kind"`
	Path string    `json:"path"`
}

// ModelFile is a model discovered on disk by the registry scan.
type ModelFile struct {
	// Filename without directory.
	// example: sd_xl_base_1.0.safetensors
	Name string `json:"name" example:"sd_xl_base_1.0.safetensors"`
	// Absolute path to the file.
	Path string `json:"path"`
	// Kind inferred from the directory layout; empty when unknown.
	// example: base
	Kind ModelKind `json:"kind,omitempty" example:"base"`
	// File size in MB.
	// example: 6617
	SizeMB int `json:"size_mb" example:"6617"`
}
