package types

// UsageChangeReason tags a persisted change to a usage record.
// Use case: the usage audit log.
type UsageChangeReason string

const (
	UsageChangeReasonMonthlyReset       UsageChangeReason = "monthly_reset"
	UsageChangeReasonComicGenerated     UsageChangeReason = "comic_generated"
	UsageChangeReasonBreathingCompleted UsageChangeReason = "breathing_completed"
	UsageChangeReasonPremiumActivated   UsageChangeReason = "premium_activated"
	UsageChangeReasonTrialStarted       UsageChangeReason = "trial_started"
	UsageChangeReasonPremiumExpired     UsageChangeReason = "premium_expired"
	UsageChangeReasonReset              UsageChangeReason = "reset"
)

// PremiumFeature names one entry of the premium catalog.
type PremiumFeature string

const (
	PremiumFeatureUnlimitedComics       PremiumFeature = "unlimited_comics"
	PremiumFeatureAllBreathingExercises PremiumFeature = "all_breathing_exercises"
	PremiumFeatureUnlimitedJournal      PremiumFeature = "unlimited_journal"
	PremiumFeaturePrioritySupport       PremiumFeature = "priority_support"
	PremiumFeatureOfflineMode           PremiumFeature = "offline_mode"
	PremiumFeatureCustomThemes          PremiumFeature = "custom_themes"
	PremiumFeatureExportData            PremiumFeature = "export_data"
	PremiumFeatureAIInsights            PremiumFeature = "ai_insights"
	PremiumFeatureVoiceJournaling       PremiumFeature = "voice_journaling"
	PremiumFeatureGroupSupport          PremiumFeature = "group_support"
	PremiumFeatureMeditationLibrary     PremiumFeature = "meditation_library"
	PremiumFeatureProgressAnalytics     PremiumFeature = "progress_analytics"
)

// PremiumFeatures is the ordered catalog shown on the upgrade prompt.
var PremiumFeatures = []PremiumFeature{
	PremiumFeatureUnlimitedComics,
	PremiumFeatureAllBreathingExercises,
	PremiumFeatureUnlimitedJournal,
	PremiumFeaturePrioritySupport,
	PremiumFeatureOfflineMode,
	PremiumFeatureCustomThemes,
	PremiumFeatureExportData,
	PremiumFeatureAIInsights,
	PremiumFeatureVoiceJournaling,
	PremiumFeatureGroupSupport,
	PremiumFeatureMeditationLibrary,
	PremiumFeatureProgressAnalytics,
}
