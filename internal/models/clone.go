package models

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Clone returns an independent copy of the value, including its list payload.
func (v ResponseValue) Clone() ResponseValue {
	v.List = cloneStrings(v.List)
	return v
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	for id, v := range l {
		out[id] = v.Clone()
	}
	return out
}

// Clone returns an independent copy of the capability record.
func (c *Capabilities) Clone() *Capabilities {
	if c == nil {
		return nil
	}
	out := *c
	out.ToolIntegrations = cloneStrings(c.ToolIntegrations)
	return &out
}

// Clone returns an independent copy of the profile.
func (p RequirementsProfile) Clone() RequirementsProfile {
	p.TargetAudience = cloneStrings(p.TargetAudience)
	p.DeliveryChannels = cloneStrings(p.DeliveryChannels)
	p.SuccessMetrics = cloneStrings(p.SuccessMetrics)
	p.Constraints = cloneStrings(p.Constraints)
	p.Capabilities = p.Capabilities.Clone()
	if p.Environment != nil {
		env := *p.Environment
		p.Environment = &env
	}
	return p
}

// Clone returns an independent copy of the recommendation.
func (r *AgentRecommendation) Clone() *AgentRecommendation {
	if r == nil {
		return nil
	}
	out := *r
	out.RequiredDependencies = cloneStrings(r.RequiredDependencies)
	out.MCPServers = cloneStrings(r.MCPServers)
	out.ToolConfigurations = cloneStrings(r.ToolConfigurations)
	out.ImplementationSteps = cloneStrings(r.ImplementationSteps)
	return &out
}

// Clone returns a deep copy of the session. Persistence snapshots clone
// before handing the session to the async writer so in-flight saves never
// share mutable state with the interview engine.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Responses = s.Responses.Clone()
	out.Requirements = s.Requirements.Clone()
	out.Recommendation = s.Recommendation.Clone()
	return &out
}
