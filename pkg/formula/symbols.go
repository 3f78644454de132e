package formula

type namedSymbol struct {
	text string
	role Role
}

// namedSymbols maps control words to the glyph they produce.
var namedSymbols = map[string]namedSymbol{
	"alpha": {"α", RoleIdentifier}, "beta": {"β", RoleIdentifier},
	"gamma": {"γ", RoleIdentifier}, "delta": {"δ", RoleIdentifier},
	"epsilon": {"ϵ", RoleIdentifier}, "varepsilon": {"ε", RoleIdentifier},
	"zeta": {"ζ", RoleIdentifier}, "eta": {"η", RoleIdentifier},
	"theta": {"θ", RoleIdentifier}, "iota": {"ι", RoleIdentifier},
	"kappa": {"κ", RoleIdentifier}, "lambda": {"λ", RoleIdentifier},
	"mu": {"μ", RoleIdentifier}, "nu": {"ν", RoleIdentifier},
	"xi": {"ξ", RoleIdentifier}, "pi": {"π", RoleIdentifier},
	"rho": {"ρ", RoleIdentifier}, "sigma": {"σ", RoleIdentifier},
	"tau": {"τ", RoleIdentifier}, "upsilon": {"υ", RoleIdentifier},
	"phi": {"ϕ", RoleIdentifier}, "varphi": {"φ", RoleIdentifier},
	"chi": {"χ", RoleIdentifier}, "psi": {"ψ", RoleIdentifier},
	"omega": {"ω", RoleIdentifier},
	"Gamma": {"Γ", RoleIdentifier}, "Delta": {"Δ", RoleIdentifier},
	"Theta": {"Θ", RoleIdentifier}, "Lambda": {"Λ", RoleIdentifier},
	"Xi": {"Ξ", RoleIdentifier}, "Pi": {"Π", RoleIdentifier},
	"Sigma": {"Σ", RoleIdentifier}, "Phi": {"Φ", RoleIdentifier},
	"Psi": {"Ψ", RoleIdentifier}, "Omega": {"Ω", RoleIdentifier},
	"infty": {"∞", RoleIdentifier}, "partial": {"∂", RoleIdentifier},
	"nabla": {"∇", RoleIdentifier},

	"cdot": {"·", RoleOperator}, "times": {"×", RoleOperator},
	"div": {"÷", RoleOperator}, "pm": {"±", RoleOperator},
	"mp": {"∓", RoleOperator}, "leq": {"≤", RoleOperator},
	"geq": {"≥", RoleOperator}, "neq": {"≠", RoleOperator},
	"approx": {"≈", RoleOperator}, "equiv": {"≡", RoleOperator},
	"to": {"→", RoleOperator}, "sum": {"∑", RoleOperator},
	"prod": {"∏", RoleOperator}, "int": {"∫", RoleOperator},
	"{": {"{", RoleOperator}, "}": {"}", RoleOperator},
}

// spacingCommands produce no node.
var spacingCommands = map[string]bool{
	",": true, ";": true, ":": true, "!": true, " ": true, "quad": true, "qquad": true,
}

// commandFor is the reverse of namedSymbols, used by the printer.
var commandFor = func() map[string]string {
	m := make(map[string]string, len(namedSymbols))
	for name, s := range namedSymbols {
		m[s.text] = name
	}
	return m
}()
